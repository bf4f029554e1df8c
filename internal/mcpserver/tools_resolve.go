package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/dataresolver"
	"github.com/erraggy/dataresolver/parser"
	"github.com/erraggy/dataresolver/typeddata"
)

type resolveInput struct {
	Schema   docInput  `json:"schema"             jsonschema:"The schema document defining the types"`
	Entities *docInput `json:"entities,omitempty" jsonschema:"Entities document used to load the root entity and to follow references"`
	Data     *docInput `json:"data,omitempty"     jsonschema:"A single data document used as the root instead of an entity from the entities document"`
	Type     string    `json:"type"               jsonschema:"Definition name of the root type (e.g. node:article)"`
	ID       string    `json:"id,omitempty"       jsonschema:"Id of the root entity in the entities document. Required unless data is given."`
	Path     string    `json:"path"               jsonschema:"Dotted data path (e.g. uid.entity.name.value). An empty path returns the root."`
	Offset   int       `json:"offset,omitempty"   jsonschema:"Skip the first N values (for pagination)"`
	Limit    int       `json:"limit,omitempty"    jsonschema:"Maximum number of values to return (default 100)"`
}

type resolveOutput struct {
	Path     string `json:"path"`
	DataType string `json:"data_type"`
	Total    int    `json:"total"`
	Returned int    `json:"returned"`
	Values   []any  `json:"values"`
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	defs, err := input.Schema.definitions()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	root, err := loadRoot(defs, input)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	res, err := dataresolver.Create(root).Get(input.Path)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}
	values, err := res.Values()
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	output := resolveOutput{
		Path:     res.Path(),
		DataType: typeddata.DataType(root),
		Total:    len(values),
		Values:   paginate(values, input.Offset, input.Limit, cfg.ValuesLimit),
	}
	if output.Values == nil {
		output.Values = []any{}
	}
	output.Returned = len(output.Values)
	return nil, output, nil
}

// loadRoot builds the root node: the data document when one is given,
// otherwise the entity type/id from the entities document.
func loadRoot(defs *parser.Definitions, input resolveInput) (typeddata.Node, error) {
	if input.Type == "" {
		return nil, fmt.Errorf("type is required")
	}
	if _, ok := defs.Schema(input.Type); !ok {
		return nil, unknownTypeError(defs, input.Type)
	}

	store, err := input.Entities.store()
	if err != nil {
		return nil, err
	}

	if input.Data.isSet() {
		if input.ID != "" {
			return nil, fmt.Errorf("id and data are mutually exclusive")
		}
		value, err := input.Data.value()
		if err != nil {
			return nil, err
		}
		return defs.Build(input.Type, value, store)
	}

	if input.ID == "" {
		return nil, fmt.Errorf("id is required unless data is given")
	}
	return defs.Load(store, input.Type, input.ID)
}
