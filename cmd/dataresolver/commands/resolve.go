package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/dataresolver"
	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/internal/cliutil"
	"github.com/erraggy/dataresolver/parser"
	"github.com/erraggy/dataresolver/typeddata"
)

// ResolveResult is the structured output of the resolve command.
type ResolveResult struct {
	Path     string `json:"path" yaml:"path"`
	DataType string `json:"data_type" yaml:"data_type"`
	Total    int    `json:"total" yaml:"total"`
	Values   []any  `json:"values" yaml:"values"`
}

// ResolveCmd creates the resolve command.
func ResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [flags] [path]",
		Short: "Resolve a dotted path against an entity or data document",
		Long: `Resolve a dotted data path and print every value it reaches, one per line.

The root is the entity --type/--id from the entities document, or the document
given with --data built as --type. An empty path prints the root itself.
Nothing found prints nothing and is not an error.`,
		Example: `  dataresolver resolve -s schema.yaml -e entities.yaml -t node:article --id 1 uid.entity.name.value
  dataresolver resolve -s schema.yaml -e entities.yaml -t node:article --data draft.yaml uid.target_id
  dataresolver resolve -s schema.yaml -t user --data - -f json name < user.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runResolve(cmd.OutOrStdout(), s, path)
		},
	}

	addDocumentFlags(cmd)
	cmd.Flags().StringP("entities", "e", "", "entities document used to load the root and follow references")
	cmd.Flags().String("id", "", "id of the root entity in the entities document")
	cmd.Flags().StringP("data", "d", "", "data document used as the root instead of an entity (- for stdin)")
	cmd.Flags().Int("export-depth", typeddata.DefaultExportDepth, "number of references followed when printing objects")

	return cmd
}

func runResolve(w io.Writer, s *settings, path string) error {
	format, err := s.format()
	if err != nil {
		return err
	}
	defs, err := s.definitions()
	if err != nil {
		return err
	}
	root, err := loadRoot(s, defs)
	if err != nil {
		return err
	}

	res, err := dataresolver.Create(root,
		dataresolver.WithLogger(s.logger),
		dataresolver.WithExportDepth(s.v.GetInt("export-depth")),
	).Get(path)
	if err != nil {
		return err
	}
	values, err := res.Values()
	if err != nil {
		return err
	}

	result := ResolveResult{
		Path:     res.Path(),
		DataType: typeddata.DataType(root),
		Total:    len(values),
		Values:   values,
	}

	return withOutput(w, s, func(w io.Writer, pal *palette) error {
		if format != FormatText {
			return OutputStructured(w, result, format)
		}
		for _, v := range result.Values {
			cliutil.Writef(w, "%s\n", pal.value(v))
		}
		return nil
	})
}

// loadRoot builds the root node from --data, or loads --type/--id from the
// entities document.
func loadRoot(s *settings, defs *parser.Definitions) (typeddata.Node, error) {
	typeName, err := s.required("type")
	if err != nil {
		return nil, err
	}
	if _, ok := defs.Schema(typeName); !ok {
		return nil, unknownTypeError(defs, typeName)
	}

	store, err := s.store()
	if err != nil {
		return nil, err
	}

	id := s.v.GetString("id")
	if dataPath := s.v.GetString("data"); dataPath != "" {
		if id != "" {
			return nil, &dataerrors.ConfigError{Option: "id", Value: id, Message: "--id and --data are mutually exclusive"}
		}
		value, err := parser.ParseValue(s.source(dataPath)...)
		if err != nil {
			return nil, err
		}
		return defs.Build(typeName, value, store)
	}

	if id == "" {
		return nil, &dataerrors.ConfigError{Option: "id", Message: "required unless --data is given"}
	}
	return defs.Load(store, typeName, id)
}

// unknownTypeError lists the available definitions.
func unknownTypeError(defs *parser.Definitions, typeName string) error {
	return &dataerrors.ConfigError{
		Option:  "type",
		Value:   typeName,
		Message: fmt.Sprintf("unknown type; available types: %v", defs.Names()),
	}
}
