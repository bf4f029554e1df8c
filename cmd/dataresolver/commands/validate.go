package commands

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/internal/cliutil"
	"github.com/erraggy/dataresolver/validator"
)

// ValidateResult is the structured output of the validate command.
type ValidateResult struct {
	Valid      bool   `json:"valid" yaml:"valid"`
	Path       string `json:"path" yaml:"path"`
	DataType   string `json:"data_type" yaml:"data_type"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
	Segment    string `json:"segment,omitempty" yaml:"segment,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// ValidateCmd creates the validate command.
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [flags] <path>",
		Short: "Check a dotted path against the schema of a type",
		Long: `Check a dotted data path against the schema of --type without loading any data.

Exits with status 1 when the path names a property the schema does not have.`,
		Example: `  dataresolver validate -s schema.yaml -t node:article uid.entity.name.value
  dataresolver validate -s schema.yaml -t user -f json Name`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), s, args[0])
		},
	}

	addDocumentFlags(cmd)

	return cmd
}

func runValidate(w io.Writer, s *settings, path string) error {
	format, err := s.format()
	if err != nil {
		return err
	}
	defs, err := s.definitions()
	if err != nil {
		return err
	}
	typeName, err := s.required("type")
	if err != nil {
		return err
	}
	schema, ok := defs.Schema(typeName)
	if !ok {
		return unknownTypeError(defs, typeName)
	}

	result := ValidateResult{Valid: true, Path: path, DataType: schema.DataType()}
	v := validator.New(validator.WithLogger(s.logger))
	if err := v.ValidatePath(schema, datapath.Expand(path), path); err != nil {
		var pathErr *dataerrors.InvalidPathError
		if !errors.As(err, &pathErr) {
			return err
		}
		result.Valid = false
		result.Error = err.Error()
		result.Segment = pathErr.Segment
		result.Suggestion = pathErr.Suggestion
	}

	err = withOutput(w, s, func(w io.Writer, pal *palette) error {
		if format != FormatText {
			return OutputStructured(w, result, format)
		}
		if result.Valid {
			cliutil.Writef(w, "%s %s (%s)\n", pal.ok("valid"), pal.path("%s", displayPath(path)), pal.typ("%s", result.DataType))
			return nil
		}
		cliutil.Writef(w, "%s %s\n", pal.bad("invalid"), result.Error)
		return nil
	})
	if err != nil {
		return err
	}
	if !result.Valid {
		return ErrInvalid
	}
	return nil
}

// displayPath shows the empty path as the root.
func displayPath(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
