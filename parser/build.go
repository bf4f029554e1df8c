package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/entitystore"
	"github.com/erraggy/dataresolver/typeddata"
)

// Build converts a decoded value into a typed node of the named definition.
//
// Reference properties become lazy references. An embedded object is used
// as the target directly; a scalar, or the sibling named by x-reference-key
// when the reference property itself is absent, is an entity id looked up in
// store on every dereference. Ids that store does not know produce unset
// references. A nil store behaves like an empty one.
//
// Values whose shape contradicts the schema fail with *dataerrors.ParseError.
// Object keys the schema does not declare are ignored.
func (d *Definitions) Build(typeName string, value any, store entitystore.Store) (typeddata.Node, error) {
	schema, ok := d.schemas[typeName]
	if !ok {
		return nil, &dataerrors.ReferenceError{
			Ref:     typeName,
			Message: "unknown definition",
		}
	}
	if store == nil {
		store = entitystore.NewMemory()
	}

	b := &builder{defs: d, store: store}
	b.loader = entitystore.NewLoader(store, b.buildEntity, entitystore.WithLoaderLogger(d.logger))
	return b.node(schema, normalize(value), typeName)
}

// Load builds the entity typeName/id from store. A missing entity fails with
// an error matching dataerrors.ErrNotFound.
func (d *Definitions) Load(store entitystore.Store, typeName, id string) (typeddata.Node, error) {
	if _, ok := d.schemas[typeName]; !ok {
		return nil, &dataerrors.ReferenceError{
			Ref:     typeName,
			Message: "unknown definition",
		}
	}
	value, found, err := store.Load(typeName, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("parser: entity %s/%s: %w", typeName, id, dataerrors.ErrNotFound)
	}
	return d.Build(typeName, value, store)
}

// builder holds the state of one Build call.
type builder struct {
	defs   *Definitions
	store  entitystore.Store
	loader *entitystore.Loader
}

// buildEntity is the entitystore.BuildFunc for referenced entities.
func (b *builder) buildEntity(entityType string, value any) (typeddata.Node, error) {
	return b.defs.Build(entityType, value, b.store)
}

// node builds the node for value under schema. A nil value yields a nil
// node, which containers drop.
func (b *builder) node(schema typeddata.Schema, value any, loc string) (typeddata.Node, error) {
	switch s := schema.(type) {
	case *typeddata.ScalarSchema:
		return b.scalar(s, value, loc)

	case *typeddata.ListSchema:
		if value == nil {
			return nil, nil
		}
		items, ok := value.([]any)
		if !ok {
			return nil, b.shapeError(loc, "array", value)
		}
		nodes := make([]typeddata.Node, 0, len(items))
		for i, item := range items {
			n, err := b.node(s.Item, item, loc+"."+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		return typeddata.NewList(s, nodes...), nil

	case *typeddata.ComplexSchema:
		if value == nil {
			return nil, nil
		}
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, b.shapeError(loc, "object", value)
		}
		return b.complex(s, obj, loc)

	case *typeddata.ReferenceSchema:
		return b.reference(s, value, loc)

	default:
		return nil, &dataerrors.ParseError{
			Location: loc,
			Message:  fmt.Sprintf("no schema for value of type %T", value),
		}
	}
}

func (b *builder) complex(s *typeddata.ComplexSchema, obj map[string]any, loc string) (typeddata.Node, error) {
	props := make(map[string]typeddata.Node, len(s.Properties))
	for _, name := range s.PropertyNames() {
		propSchema, ok := s.Property(name)
		if !ok {
			continue
		}
		value, present := obj[name]
		if !present {
			ref, isRef := propSchema.(*typeddata.ReferenceSchema)
			if !isRef {
				continue
			}
			key := b.defs.bindings[ref].key
			if key == "" {
				continue
			}
			if value, present = obj[key]; !present {
				continue
			}
		}
		child, err := b.node(propSchema, value, loc+"."+name)
		if err != nil {
			return nil, err
		}
		props[name] = child
	}

	for key := range obj {
		if _, ok := s.Properties[key]; !ok {
			b.defs.logger.Debug("ignoring undeclared property", "location", loc, "property", key)
		}
	}
	return typeddata.NewComplex(s, props), nil
}

func (b *builder) reference(s *typeddata.ReferenceSchema, value any, loc string) (typeddata.Node, error) {
	binding, ok := b.defs.bindings[s]
	if !ok {
		return nil, &dataerrors.ReferenceError{
			Ref:     s.TargetType,
			Message: "reference schema at " + loc + " was not compiled by these definitions",
		}
	}

	switch v := value.(type) {
	case nil:
		return typeddata.NewReference(s, nil), nil
	case map[string]any:
		target, err := b.node(s.Target(), v, loc)
		if err != nil {
			return nil, err
		}
		return typeddata.NewReference(s, target), nil
	default:
		id, ok := entityID(v)
		if !ok {
			return nil, b.shapeError(loc, "entity id or object", value)
		}
		return typeddata.NewLazyReference(s, id, b.loader.Func(binding.target, id)), nil
	}
}

func (b *builder) scalar(s *typeddata.ScalarSchema, value any, loc string) (typeddata.Node, error) {
	switch s.Type {
	case typeddata.TypeString:
		if value == nil {
			return nil, nil
		}
		if _, ok := value.(string); !ok {
			return nil, b.shapeError(loc, "string", value)
		}
	case typeddata.TypeInteger:
		if value == nil {
			return nil, nil
		}
		i, ok := asInteger(value)
		if !ok {
			return nil, b.shapeError(loc, "integer", value)
		}
		value = i
	case typeddata.TypeNumber:
		if value == nil {
			return nil, nil
		}
		if !isNumber(value) {
			return nil, b.shapeError(loc, "number", value)
		}
	case typeddata.TypeBoolean:
		if value == nil {
			return nil, nil
		}
		if _, ok := value.(bool); !ok {
			return nil, b.shapeError(loc, "boolean", value)
		}
	case typeddata.TypeNull:
		if value != nil {
			return nil, b.shapeError(loc, "null", value)
		}
	}
	return typeddata.NewScalar(s, value), nil
}

func (b *builder) shapeError(loc, want string, got any) error {
	return &dataerrors.ParseError{
		Location: loc,
		Message:  fmt.Sprintf("expected %s, got %s", want, describe(got)),
	}
}

// describe names the decoded type of a value for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		if isNumber(v) {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

// asInteger accepts the integer representations produced by the YAML and
// JSON decoders. Whole float64 values (JSON numbers) are converted to int.
func asInteger(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	default:
		return false
	}
}

// entityID formats a scalar id. Whole numbers have no fractional part.
func entityID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, true
	case bool:
		return "", false
	default:
		if i, ok := asInteger(id); ok {
			return strconv.Itoa(i), true
		}
		if f, ok := id.(float64); ok {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return "", false
	}
}

// normalize returns a copy of v in which map[any]any values, produced by
// the YAML decoder for mappings with non-string keys, become map[string]any.
// Input values may be shared with a store and are never modified.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = normalize(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = normalize(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	default:
		return v
	}
}
