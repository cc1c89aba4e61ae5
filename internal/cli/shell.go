package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tasklist/internal/repl"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive task shell (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runShell,
	}
}

// runShell loads the task list and hands it to the interactive shell. A task
// file that cannot be loaded aborts before the shell starts so that exit
// cannot overwrite it.
func (a *app) runShell(cmd *cobra.Command, args []string) error {
	st, backend, err := a.openStore()
	if err != nil {
		return err
	}
	sh := repl.New(st, backend, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
	if err := sh.Run(); err != nil {
		return sysError(err)
	}
	return nil
}
