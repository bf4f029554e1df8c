package parser

import (
	"fmt"
	"strings"

	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/internal/maputil"
	"github.com/erraggy/dataresolver/logging"
	"github.com/erraggy/dataresolver/typeddata"
)

// Schema document type names.
const (
	typeObject = "object"
	typeArray  = "array"
)

// refPrefix is the only $ref form supported: a local definition.
const refPrefix = "#/definitions/"

// rawSchema is one schema object of a schema document.
type rawSchema struct {
	Type         string                `yaml:"type,omitempty" json:"type,omitempty"`
	Ref          string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	DataType     string                `yaml:"x-data-type,omitempty" json:"x-data-type,omitempty"`
	Reference    string                `yaml:"x-reference,omitempty" json:"x-reference,omitempty"`
	ReferenceKey string                `yaml:"x-reference-key,omitempty" json:"x-reference-key,omitempty"`
	Properties   map[string]*rawSchema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Items        *rawSchema            `yaml:"items,omitempty" json:"items,omitempty"`
}

// schemaDocument is the top level of a schema document.
type schemaDocument struct {
	Definitions map[string]*rawSchema `yaml:"definitions" json:"definitions"`
}

// referenceBinding records how data for a reference schema is loaded.
type referenceBinding struct {
	// target is the definition name of the referenced entity type
	target string
	// key is the sibling property holding the target id, if any
	key string
}

// Definitions is a compiled schema document: named schemas that typed data
// can be built against.
type Definitions struct {
	// SourcePath is the document's input source path
	SourcePath string
	// SourceFormat is the format of the source document
	SourceFormat SourceFormat

	schemas  map[string]typeddata.Schema
	bindings map[*typeddata.ReferenceSchema]referenceBinding
	logger   logging.Logger
}

// ParseDefinitions reads and compiles a schema document.
//
// Example:
//
//	defs, err := parser.ParseDefinitions(parser.WithFilePath("schema.yaml"))
func ParseDefinitions(opts ...Option) (*Definitions, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	src, err := readSource(cfg)
	if err != nil {
		return nil, err
	}

	var doc schemaDocument
	if err := src.unmarshal(&doc); err != nil {
		return nil, err
	}
	if len(doc.Definitions) == 0 {
		return nil, &dataerrors.ParseError{
			Path:    src.path,
			Message: "document has no definitions",
		}
	}

	defs, err := compile(doc.Definitions, src.path, cfg.logger)
	if err != nil {
		return nil, err
	}
	defs.SourcePath = src.path
	defs.SourceFormat = src.format

	cfg.logger.Debug("compiled definitions", "source", src.path, "count", len(defs.schemas))
	return defs, nil
}

// Schema returns the compiled schema of the named definition.
func (d *Definitions) Schema(name string) (typeddata.Schema, bool) {
	s, ok := d.schemas[name]
	return s, ok
}

// Names returns the definition names, sorted.
func (d *Definitions) Names() []string {
	return maputil.SortedKeys(d.schemas)
}

// ReferenceTarget returns the definition name a reference schema points at.
func (d *Definitions) ReferenceTarget(rs *typeddata.ReferenceSchema) (string, bool) {
	b, ok := d.bindings[rs]
	return b.target, ok
}

// compiler turns raw definitions into linked schemas.
type compiler struct {
	raw     map[string]*rawSchema
	source  string
	defs    *Definitions
	resolve map[string]bool // aliases being resolved
}

// compile links raw definitions in two passes. The first allocates one
// schema per definition so $ref cycles through objects and lists can be
// expressed; the second fills them in.
func compile(raw map[string]*rawSchema, source string, logger logging.Logger) (*Definitions, error) {
	c := &compiler{
		raw:    raw,
		source: source,
		defs: &Definitions{
			schemas:  make(map[string]typeddata.Schema, len(raw)),
			bindings: make(map[*typeddata.ReferenceSchema]referenceBinding),
			logger:   logging.OrNop(logger),
		},
		resolve: make(map[string]bool),
	}

	names := maputil.SortedKeys(raw)

	for _, name := range names {
		rs := raw[name]
		if rs == nil {
			return nil, c.parseError(name, "definition is empty")
		}
		if rs.Ref != "" {
			continue
		}
		shell, err := c.allocate(name, rs)
		if err != nil {
			return nil, err
		}
		c.defs.schemas[name] = shell
	}

	for _, name := range names {
		if raw[name].Ref == "" {
			continue
		}
		s, err := c.alias(name)
		if err != nil {
			return nil, err
		}
		c.defs.schemas[name] = s
	}

	for _, name := range names {
		rs := raw[name]
		if rs.Ref != "" {
			continue
		}
		if err := c.fill(c.defs.schemas[name], rs, name); err != nil {
			return nil, err
		}
	}

	for _, name := range names {
		if err := c.checkItemCycle(name); err != nil {
			return nil, err
		}
	}

	return c.defs, nil
}

// checkItemCycle rejects a definition whose list items lead back to a
// schema already on the chain without passing through an object. Such a
// list has no addressable property at any depth.
func (c *compiler) checkItemCycle(name string) error {
	s := c.defs.schemas[name]
	if _, ok := s.(*typeddata.ListSchema); !ok {
		return nil
	}
	seen := make(map[typeddata.Schema]bool)
	for s != nil {
		if seen[s] {
			return &dataerrors.ReferenceError{
				Ref:        refPrefix + name,
				IsCircular: true,
				Message:    "array items reach the array again without passing through an object",
			}
		}
		seen[s] = true
		switch sc := s.(type) {
		case *typeddata.ListSchema:
			s = sc.Item
		case *typeddata.ReferenceSchema:
			s = c.defs.schemas[c.defs.bindings[sc].target]
		default:
			return nil
		}
	}
	return nil
}

// allocate returns an empty schema of the kind rs describes.
func (c *compiler) allocate(loc string, rs *rawSchema) (typeddata.Schema, error) {
	if rs.Reference != "" {
		return c.reference(loc, rs)
	}
	switch kind := c.kind(rs); kind {
	case typeObject:
		return &typeddata.ComplexSchema{Name: rs.DataType}, nil
	case typeArray:
		return &typeddata.ListSchema{Name: rs.DataType}, nil
	case typeddata.TypeString, typeddata.TypeInteger, typeddata.TypeNumber,
		typeddata.TypeBoolean, typeddata.TypeNull, typeddata.TypeAny:
		return &typeddata.ScalarSchema{Type: kind, Name: rs.DataType}, nil
	default:
		return nil, c.parseError(loc, "unknown type '"+rs.Type+"'")
	}
}

// kind returns the schema kind, inferring it from properties or items
// when type is omitted.
func (c *compiler) kind(rs *rawSchema) string {
	switch {
	case rs.Type != "":
		return rs.Type
	case rs.Properties != nil:
		return typeObject
	case rs.Items != nil:
		return typeArray
	default:
		return typeddata.TypeAny
	}
}

// reference returns a lazily linked reference schema and records its binding.
func (c *compiler) reference(loc string, rs *rawSchema) (*typeddata.ReferenceSchema, error) {
	target := rs.Reference
	if _, ok := c.raw[target]; !ok {
		return nil, &dataerrors.ReferenceError{
			Ref:     target,
			Message: "x-reference at " + loc + " names an unknown definition",
		}
	}
	defs := c.defs
	ref := typeddata.NewLazyReferenceSchema(target, func() typeddata.Schema {
		return defs.schemas[target]
	})
	ref.Name = rs.DataType
	c.defs.bindings[ref] = referenceBinding{target: target, key: rs.ReferenceKey}
	return ref, nil
}

// alias resolves a definition that is only a $ref to the schema it names.
func (c *compiler) alias(name string) (typeddata.Schema, error) {
	if s, ok := c.defs.schemas[name]; ok {
		return s, nil
	}
	if c.resolve[name] {
		return nil, &dataerrors.ReferenceError{
			Ref:        refPrefix + name,
			IsCircular: true,
			Message:    "definitions alias each other without reaching a schema",
		}
	}
	c.resolve[name] = true
	defer delete(c.resolve, name)

	target, err := c.refName(name, c.raw[name].Ref)
	if err != nil {
		return nil, err
	}
	if c.raw[target].Ref == "" {
		return c.defs.schemas[target], nil
	}
	s, err := c.alias(target)
	if err != nil {
		return nil, err
	}
	c.defs.schemas[name] = s
	return s, nil
}

// refName validates a $ref and returns the definition name it points at.
func (c *compiler) refName(loc, ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, refPrefix)
	if !ok {
		return "", &dataerrors.ReferenceError{
			Ref:     ref,
			Message: "only local " + refPrefix + "<name> references are supported (at " + loc + ")",
		}
	}
	if rs, exists := c.raw[name]; !exists || rs == nil {
		return "", &dataerrors.ReferenceError{
			Ref:     ref,
			Message: "definition not found (at " + loc + ")",
		}
	}
	return name, nil
}

// inline compiles a nested schema object.
func (c *compiler) inline(rs *rawSchema, loc string) (typeddata.Schema, error) {
	if rs == nil {
		return nil, c.parseError(loc, "schema is empty")
	}
	if rs.Ref != "" {
		name, err := c.refName(loc, rs.Ref)
		if err != nil {
			return nil, err
		}
		return c.defs.schemas[name], nil
	}
	s, err := c.allocate(loc, rs)
	if err != nil {
		return nil, err
	}
	if err := c.fill(s, rs, loc); err != nil {
		return nil, err
	}
	return s, nil
}

// fill completes an allocated schema with its children.
func (c *compiler) fill(s typeddata.Schema, rs *rawSchema, loc string) error {
	switch sc := s.(type) {
	case *typeddata.ComplexSchema:
		sc.Properties = make(map[string]typeddata.Schema, len(rs.Properties))
		for _, name := range maputil.SortedKeys(rs.Properties) {
			prop, err := c.inline(rs.Properties[name], loc+".properties."+name)
			if err != nil {
				return err
			}
			sc.Properties[name] = prop
		}
		return c.checkReferenceKeys(sc, loc)

	case *typeddata.ListSchema:
		if rs.Items == nil {
			return c.parseError(loc, "array schema requires items")
		}
		item, err := c.inline(rs.Items, loc+".items")
		if err != nil {
			return err
		}
		sc.Item = item
	}
	return nil
}

// checkReferenceKeys verifies every x-reference-key names a sibling property.
func (c *compiler) checkReferenceKeys(sc *typeddata.ComplexSchema, loc string) error {
	for _, name := range sc.PropertyNames() {
		ref, ok := sc.Properties[name].(*typeddata.ReferenceSchema)
		if !ok {
			continue
		}
		key := c.defs.bindings[ref].key
		if key == "" {
			continue
		}
		if _, ok := sc.Property(key); !ok {
			return c.parseError(loc+".properties."+name,
				"x-reference-key '"+key+"' is not a sibling property")
		}
	}
	return nil
}

func (c *compiler) parseError(loc, msg string) error {
	return &dataerrors.ParseError{
		Path:     c.source,
		Location: "definitions." + loc,
		Message:  msg,
	}
}
