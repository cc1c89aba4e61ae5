// Package repl implements the interactive task shell: a numbered menu that
// drives a store.Store one command at a time.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mesh-intelligence/tasklist/internal/output"
	"github.com/mesh-intelligence/tasklist/internal/store"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Messages shown by the shell.
const (
	Menu             = "1: Add | 2: View | 3: Delete | 4: Complete | 5: Save | 6: Exit"
	PromptCommand    = "Enter your Task: "
	PromptTitle      = "Enter task title: "
	PromptDeleteID   = "Enter task ID to delete: "
	PromptCompleteID = "Enter task ID to complete: "

	MsgEmptyTitle    = "Task title cannot be empty."
	MsgInvalidID     = "Invalid input. Please enter a valid task ID."
	MsgInvalidChoice = "Invalid choice. Please select a valid option."
	MsgSaved         = "Tasks saved."
	MsgGoodbye       = "Goodbye."
)

// Shell reads commands from an input stream and applies them to a store.
// The backend is used for the save and exit commands.
type Shell struct {
	store   *store.Store
	backend types.Backend
	in      *bufio.Reader
	out     io.Writer
	printer *output.Printer
	logger  *log.Logger
}

// New returns a shell over st that persists through backend. The store is
// expected to be loaded already.
func New(st *store.Store, backend types.Backend, in io.Reader, out io.Writer, logger *log.Logger) *Shell {
	return &Shell{
		store:   st,
		backend: backend,
		in:      bufio.NewReader(in),
		out:     out,
		printer: output.NewPrinter(out),
		logger:  logger.With("session", newSessionID()),
	}
}

// Run processes commands until exit or end of input, then saves. Errors from
// individual commands are printed and the loop continues. Run returns an
// error only when the final save fails.
func (s *Shell) Run() error {
	s.logger.Debug("shell started", "tasks", s.store.Len(), "location", s.backend.Location())
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, Menu)
		line, ok := s.prompt(PromptCommand)
		if !ok {
			// End of input behaves like exit so nothing is lost.
			fmt.Fprintln(s.out)
			return s.exit()
		}

		cmd, ok := ParseCommand(line)
		if !ok {
			fmt.Fprintln(s.out, MsgInvalidChoice)
			continue
		}
		if cmd == CmdExit {
			return s.exit()
		}
		s.dispatch(cmd)
	}
}

func (s *Shell) dispatch(cmd Command) {
	switch cmd {
	case CmdAdd:
		s.add()
	case CmdView:
		s.printer.Tasks(s.store.List())
	case CmdDelete:
		s.withID(PromptDeleteID, "delete", s.store.Delete, "Deleted")
	case CmdComplete:
		s.withID(PromptCompleteID, "complete", s.store.Complete, "Completed")
	case CmdSave:
		if err := s.save(); err != nil {
			s.reportError(err)
			return
		}
		fmt.Fprintln(s.out, MsgSaved)
	}
}

func (s *Shell) add() {
	title, ok := s.prompt(PromptTitle)
	if !ok {
		return
	}
	t, err := s.store.Add(title)
	if errors.Is(err, types.ErrInvalidTitle) {
		fmt.Fprintln(s.out, MsgEmptyTitle)
		return
	}
	if err != nil {
		s.reportError(err)
		return
	}
	s.logger.Debug("task added", "id", t.ID)
	fmt.Fprintf(s.out, "Added task %d.\n", t.ID)
}

// withID prompts for a task ID and applies op to it. Invalid input aborts the
// command without touching the store.
func (s *Shell) withID(prompt, name string, op func(int) bool, verb string) {
	line, ok := s.prompt(prompt)
	if !ok {
		return
	}
	id, ok := ParseID(line)
	if !ok {
		fmt.Fprintln(s.out, MsgInvalidID)
		return
	}
	if !op(id) {
		s.logger.Debug("task not found", "op", name, "id", id)
		fmt.Fprintf(s.out, "Task %d not found.\n", id)
		return
	}
	s.logger.Debug("task updated", "op", name, "id", id)
	fmt.Fprintf(s.out, "%s task %d.\n", verb, id)
}

func (s *Shell) save() error {
	if err := s.store.Save(s.backend); err != nil {
		return err
	}
	s.logger.Info("tasks saved", "tasks", s.store.Len(), "location", s.backend.Location())
	return nil
}

func (s *Shell) exit() error {
	if err := s.save(); err != nil {
		s.reportError(err)
		return err
	}
	fmt.Fprintln(s.out, MsgGoodbye)
	return nil
}

func (s *Shell) reportError(err error) {
	s.logger.Error("command failed", "err", err)
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

// prompt writes p and reads one line of any length. It reports false at end
// of input; a final line without a newline is still returned.
func (s *Shell) prompt(p string) (string, bool) {
	fmt.Fprint(s.out, p)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.logger.Error("reading input", "err", err)
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

// newSessionID tags log lines from one shell session.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
