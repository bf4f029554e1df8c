package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/erraggy/dataresolver"
)

// ErrInvalid is returned by commands that already reported a failed check
// on their output. Callers exit non-zero without printing it again.
var ErrInvalid = errors.New("invalid")

// RootCmd creates and returns the root command for the dataresolver CLI.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataresolver",
		Short: "Resolve dotted data paths against typed data",
		Long: `dataresolver resolves dotted paths such as uid.entity.name.value against
typed data described by a schema document.

Lists fan out, references are followed to the entities they name, and a path
that names a property the schema does not have fails with a message naming
the bad segment.

Settings are read from flags, then DATARESOLVER_* environment variables
(DATARESOLVER_SCHEMA, DATARESOLVER_ENTITIES, DATARESOLVER_FORMAT, ...), then
a .dataresolver.yaml file in the working or home directory.`,
		Version:       dataresolver.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "config file (default .dataresolver.yaml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log parsing and resolution details to stderr")

	return cmd
}

// addDocumentFlags adds the flags shared by commands that read a schema.
func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("schema", "s", "", "schema document (YAML or JSON, - for stdin)")
	cmd.Flags().StringP("type", "t", "", "definition name of the root type (e.g. node:article)")
	cmd.Flags().StringP("format", "f", FormatText, "output format: text, json, or yaml")
	cmd.Flags().StringP("output", "o", "", "write output to a file instead of stdout")
}
