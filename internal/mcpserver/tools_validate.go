package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/parser"
	"github.com/erraggy/dataresolver/validator"
)

type validatePathInput struct {
	Schema docInput `json:"schema" jsonschema:"The schema document defining the types"`
	Type   string   `json:"type"   jsonschema:"Definition name of the root type (e.g. node:article)"`
	Path   string   `json:"path"   jsonschema:"Dotted data path to check"`
}

type validatePathOutput struct {
	Valid      bool   `json:"valid"`
	Path       string `json:"path"`
	DataType   string `json:"data_type"`
	Error      string `json:"error,omitempty"`
	Segment    string `json:"segment,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func handleValidatePath(_ context.Context, _ *mcp.CallToolRequest, input validatePathInput) (*mcp.CallToolResult, validatePathOutput, error) {
	defs, err := input.Schema.definitions()
	if err != nil {
		return errResult(err), validatePathOutput{}, nil
	}
	schema, ok := defs.Schema(input.Type)
	if !ok {
		return errResult(unknownTypeError(defs, input.Type)), validatePathOutput{}, nil
	}

	output := validatePathOutput{
		Valid:    true,
		Path:     input.Path,
		DataType: schema.DataType(),
	}

	err = validator.ValidatePath(schema, datapath.Expand(input.Path), input.Path)
	if err == nil {
		return nil, output, nil
	}

	output.Valid = false
	output.Error = err.Error()
	var pathErr *dataerrors.InvalidPathError
	if errors.As(err, &pathErr) {
		output.Segment = pathErr.Segment
		output.Suggestion = pathErr.Suggestion
	}
	return nil, output, nil
}

// unknownTypeError lists the available definitions.
func unknownTypeError(defs *parser.Definitions, typeName string) error {
	return fmt.Errorf("unknown type %q; available types: %s", typeName, strings.Join(defs.Names(), ", "))
}
