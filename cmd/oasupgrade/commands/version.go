package commands

import (
	"github.com/erraggy/oasupgrade"
	"github.com/erraggy/oasupgrade/internal/cliutil"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliutil.Writef(cmd.OutOrStdout(), "%s", oasupgrade.BuildInfo())
			return nil
		},
	}
}
