package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the tasks release version.
var Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/tasklist"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tasks version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tasks v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
