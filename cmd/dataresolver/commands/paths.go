package commands

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/internal/cliutil"
	"github.com/erraggy/dataresolver/typeddata"
	"github.com/erraggy/dataresolver/walker"
)

// PathsResult is the structured output of the paths command.
type PathsResult struct {
	Type  string         `json:"type,omitempty" yaml:"type,omitempty"`
	Types []string       `json:"types,omitempty" yaml:"types,omitempty"`
	Paths []*PathSummary `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// PathSummary describes one path of a type.
type PathSummary struct {
	Path     string `json:"path" yaml:"path"`
	DataType string `json:"data_type" yaml:"data_type"`
	Multiple bool   `json:"multiple" yaml:"multiple"`
}

// PathsCmd creates the paths command.
func PathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths [flags]",
		Short: "List the dotted paths a type accepts",
		Long: `List the dotted data paths --type accepts, depth-first in sorted order, with
the display type each path ends at and whether it can yield multiple values.

Recursive schemas are cut at --max-depth segments. Without --type the
definition names of the schema are listed instead.`,
		Example: `  dataresolver paths -s schema.yaml
  dataresolver paths -s schema.yaml -t node:article --max-depth 3
  dataresolver paths -s schema.yaml -t node:article --prefix uid.entity -q`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runPaths(cmd, s)
		},
	}

	addDocumentFlags(cmd)
	cmd.Flags().Int("max-depth", walker.DefaultMaxDepth, "maximum number of segments per path")
	cmd.Flags().String("prefix", "", "only list this path and the paths below it")
	cmd.Flags().BoolP("quiet", "q", false, "omit headers and separate columns with tabs")

	return cmd
}

func runPaths(cmd *cobra.Command, s *settings) error {
	format, err := s.format()
	if err != nil {
		return err
	}
	defs, err := s.definitions()
	if err != nil {
		return err
	}

	typeName := s.v.GetString("type")
	if typeName == "" {
		result := PathsResult{Types: defs.Names()}
		return withOutput(cmd.OutOrStdout(), s, func(w io.Writer, pal *palette) error {
			if format != FormatText {
				return OutputStructured(w, result, format)
			}
			for _, name := range result.Types {
				cliutil.Writef(w, "%s\n", pal.typ("%s", name))
			}
			return nil
		})
	}

	schema, ok := defs.Schema(typeName)
	if !ok {
		return unknownTypeError(defs, typeName)
	}

	collected, err := walker.CollectPaths(schema,
		walker.WithMaxDepth(s.v.GetInt("max-depth")),
		walker.WithUserContext(cmd.Context()),
		walker.WithSkippedHandler(func(wc *walker.WalkContext, reason string, skipped typeddata.Schema) {
			s.logger.Debug("skipped schema", "path", wc.Path, "reason", reason, "type", skipped.DataType())
		}),
	)
	if err != nil {
		return err
	}

	prefix := s.v.GetString("prefix")
	result := PathsResult{Type: typeName}
	for _, info := range collected {
		if !datapath.HasPrefix(info.Path, prefix) {
			continue
		}
		result.Paths = append(result.Paths, &PathSummary{
			Path:     info.Path,
			DataType: info.DataType,
			Multiple: info.Multiple,
		})
	}

	return withOutput(cmd.OutOrStdout(), s, func(w io.Writer, pal *palette) error {
		if format != FormatText {
			return OutputStructured(w, result, format)
		}
		rows := make([][]string, 0, len(result.Paths))
		for _, p := range result.Paths {
			rows = append(rows, []string{p.Path, p.DataType, strconv.FormatBool(p.Multiple)})
		}
		RenderTable(w, pal, []string{"PATH", "TYPE", "MULTIPLE"}, rows, s.v.GetBool("quiet"), func(col int, cell string) string {
			switch col {
			case 0:
				return pal.path("%s", cell)
			case 1:
				return pal.typ("%s", cell)
			default:
				return pal.boolean("%s", cell)
			}
		})
		return nil
	})
}
