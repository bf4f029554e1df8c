package parser

import (
	"fmt"
)

// entitiesDocument is the top level of an entities document.
type entitiesDocument struct {
	Entities map[string]map[string]any `yaml:"entities" json:"entities"`
}

// ParseEntities reads an entities document and returns its entities keyed
// by definition name, then id. Ids are always strings, even when written as
// numbers. The result can be loaded into an entitystore.Memory with PutAll.
//
// Example:
//
//	entities, err := parser.ParseEntities(parser.WithFilePath("entities.yaml"))
//	store := entitystore.NewMemory()
//	store.PutAll(entities)
func ParseEntities(opts ...Option) (map[string]map[string]any, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	src, err := readSource(cfg)
	if err != nil {
		return nil, err
	}

	var doc entitiesDocument
	if err := src.unmarshal(&doc); err != nil {
		return nil, err
	}

	out := make(map[string]map[string]any, len(doc.Entities))
	count := 0
	for entityType, byID := range doc.Entities {
		entities := make(map[string]any, len(byID))
		for id, value := range byID {
			entities[id] = normalize(value)
			count++
		}
		out[entityType] = entities
	}

	cfg.logger.Debug("parsed entities", "source", src.path, "types", len(out), "count", count)
	return out, nil
}

// ParseValue reads a single data document, such as the root value passed to
// Definitions.Build. Mappings always decode to map[string]any.
func ParseValue(opts ...Option) (any, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	src, err := readSource(cfg)
	if err != nil {
		return nil, err
	}

	var value any
	if err := src.unmarshal(&value); err != nil {
		return nil, err
	}
	return normalize(value), nil
}
