// Package output provides formatters for task listings.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// EmptyMessage is printed when there are no tasks to list.
const EmptyMessage = "No tasks available."

// Printer writes task listings to w. Completion marks are colored when w
// is a terminal and plain otherwise.
type Printer struct {
	w       io.Writer
	done    lipgloss.Style
	pending lipgloss.Style
}

// NewPrinter returns a Printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		done:    r.NewStyle().Foreground(lipgloss.Color("2")),
		pending: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Task writes one task as "<id>. <title> [<mark>]".
func (p *Printer) Task(t types.Task) {
	style := p.pending
	if t.Completed {
		style = p.done
	}
	fmt.Fprintf(p.w, "%d. %s [%s]\n", t.ID, t.Title, style.Render(t.Mark()))
}

// Tasks writes every task in order, or EmptyMessage when there are none.
func (p *Printer) Tasks(tasks []types.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.w, EmptyMessage)
		return
	}
	for _, t := range tasks {
		p.Task(t)
	}
}

// JSON writes tasks as an indented JSON array. An empty list prints [].
func JSON(w io.Writer, tasks []types.Task) error {
	if tasks == nil {
		tasks = []types.Task{}
	}
	out, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
