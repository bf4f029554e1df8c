package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/dataresolver"
	"github.com/erraggy/dataresolver/internal/cliutil"
)

// VersionCmd creates the version command.
func VersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				cliutil.Writef(cmd.OutOrStdout(), "%s\n", dataresolver.Version())
				return nil
			}
			cliutil.Writef(cmd.OutOrStdout(), "dataresolver %s\n%s\n", dataresolver.Version(), dataresolver.BuildInfo())
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print the version number only")

	return cmd
}
