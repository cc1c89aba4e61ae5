// One-shot task commands. Each loads the task list, applies one operation,
// and saves when something changed.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/output"
	"github.com/mesh-intelligence/tasklist/internal/repl"
	"github.com/mesh-intelligence/tasklist/internal/store"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Long:  "Add a task. All arguments are joined with spaces to form the title.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, backend, err := a.openStore()
			if err != nil {
				return err
			}

			t, err := st.Add(strings.Join(args, " "))
			if err != nil {
				return classify(err)
			}
			if err := a.saveStore(st, backend); err != nil {
				return err
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", t.ID, t.Title)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"view", "ls"},
		Short:   "List all tasks in the order they were added",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.openStore()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return output.JSON(cmd.OutOrStdout(), st.List())
			}
			output.NewPrinter(cmd.OutOrStdout()).Tasks(st.List())
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutateByID(cmd, args[0], (*store.Store).Delete, "Deleted")
		},
	}
}

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task as completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutateByID(cmd, args[0], (*store.Store).Complete, "Completed")
		},
	}
}

// mutateByID parses arg as a task ID, applies op, and saves. Nothing is
// written when the ID is invalid or unknown.
func (a *app) mutateByID(cmd *cobra.Command, arg string, op func(*store.Store, int) bool, verb string) error {
	id, ok := repl.ParseID(arg)
	if !ok {
		return userError(fmt.Errorf("invalid task ID %q", arg))
	}

	st, backend, err := a.openStore()
	if err != nil {
		return err
	}
	t, found := st.Get(id)
	if !found || !op(st, id) {
		return userError(fmt.Errorf("task %d: %w", id, types.ErrNotFound))
	}
	if err := a.saveStore(st, backend); err != nil {
		return err
	}

	if a.flags.jsonMode {
		// Deleted tasks are reported as they were before removal.
		if after, ok := st.Get(id); ok {
			t = after
		}
		return writeJSON(cmd, t)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s task %d.\n", verb, id)
	return nil
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
