package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/walker"
)

// maxWalkDepth caps a requested max_depth.
const maxWalkDepth = 32

type listPathsInput struct {
	Schema   docInput `json:"schema"              jsonschema:"The schema document defining the types"`
	Type     string   `json:"type,omitempty"      jsonschema:"Definition name of the root type. Omit to list the available types."`
	Prefix   string   `json:"prefix,omitempty"    jsonschema:"Only return this path and the paths below it (e.g. uid.entity)"`
	MaxDepth int      `json:"max_depth,omitempty" jsonschema:"Maximum number of segments per path (default 8)"`
	Offset   int      `json:"offset,omitempty"    jsonschema:"Skip the first N results (for pagination)"`
	Limit    int      `json:"limit,omitempty"     jsonschema:"Maximum number of results to return (default 100)"`
}

type pathSummary struct {
	Path     string `json:"path"`
	DataType string `json:"data_type"`
	Multiple bool   `json:"multiple"`
}

type listPathsOutput struct {
	Types    []string      `json:"types,omitempty"`
	Total    int           `json:"total"`
	Matched  int           `json:"matched"`
	Returned int           `json:"returned"`
	Paths    []pathSummary `json:"paths,omitempty"`
}

func handleListPaths(ctx context.Context, _ *mcp.CallToolRequest, input listPathsInput) (*mcp.CallToolResult, listPathsOutput, error) {
	defs, err := input.Schema.definitions()
	if err != nil {
		return errResult(err), listPathsOutput{}, nil
	}

	if input.Type == "" {
		names := defs.Names()
		return nil, listPathsOutput{Types: names, Total: len(names), Matched: len(names), Returned: len(names)}, nil
	}

	schema, ok := defs.Schema(input.Type)
	if !ok {
		return errResult(unknownTypeError(defs, input.Type)), listPathsOutput{}, nil
	}

	depth := cfg.MaxDepth
	if input.MaxDepth > 0 {
		depth = input.MaxDepth
	}
	if depth > maxWalkDepth {
		return errResult(fmt.Errorf("max_depth %d exceeds maximum %d", depth, maxWalkDepth)), listPathsOutput{}, nil
	}

	all, err := walker.CollectPaths(schema, walker.WithMaxDepth(depth), walker.WithUserContext(ctx))
	if err != nil {
		return errResult(err), listPathsOutput{}, nil
	}

	matched := makeSlice[pathSummary](len(all))
	for _, info := range all {
		if !datapath.HasPrefix(info.Path, input.Prefix) {
			continue
		}
		matched = append(matched, pathSummary{
			Path:     info.Path,
			DataType: info.DataType,
			Multiple: info.Multiple,
		})
	}

	output := listPathsOutput{
		Total:   len(all),
		Matched: len(matched),
		Paths:   paginate(matched, input.Offset, input.Limit, cfg.PathsLimit),
	}
	output.Returned = len(output.Paths)
	return nil, output, nil
}
