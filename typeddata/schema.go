package typeddata

import (
	"sync"

	"github.com/erraggy/dataresolver/internal/maputil"
)

// Scalar type names used by [ScalarSchema].
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
	TypeAny     = "any"
)

// Display names used when a schema carries no explicit name.
const (
	listTypeName      = "list"
	referenceTypeName = "reference"
	complexTypeName   = "map"
)

// Schema describes the type of a data node.
type Schema interface {
	// DataType returns the display type name, e.g. "entity:node:article".
	DataType() string

	schema()
}

// ScalarSchema describes a primitive value. It has no properties.
type ScalarSchema struct {
	// Type is one of the Type* constants
	Type string
	// Name overrides the display type name
	Name string
}

// DataType implements Schema.
func (s *ScalarSchema) DataType() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Type != "" {
		return s.Type
	}
	return TypeAny
}

func (*ScalarSchema) schema() {}

// ListSchema describes an ordered sequence whose items share one schema.
type ListSchema struct {
	Item Schema
	Name string
}

// DataType implements Schema.
func (s *ListSchema) DataType() string {
	if s.Name != "" {
		return s.Name
	}
	return listTypeName
}

func (*ListSchema) schema() {}

// ReferenceSchema describes an indirection to a node of the target schema.
//
// The target is either set directly or produced by TargetFunc on first use,
// which allows recursive schemas such as a user referencing other users.
type ReferenceSchema struct {
	Name string
	// TargetType is the definition name of the target, if known
	TargetType string

	target     Schema
	targetFunc func() Schema
	once       sync.Once
}

// NewReferenceSchema returns a reference to target.
func NewReferenceSchema(target Schema) *ReferenceSchema {
	rs := &ReferenceSchema{target: target}
	if target != nil {
		rs.TargetType = target.DataType()
	}
	return rs
}

// NewLazyReferenceSchema returns a reference whose target is computed by fn
// the first time it is needed.
func NewLazyReferenceSchema(targetType string, fn func() Schema) *ReferenceSchema {
	return &ReferenceSchema{TargetType: targetType, targetFunc: fn}
}

// Target returns the referenced schema, or nil if none is known.
func (s *ReferenceSchema) Target() Schema {
	s.once.Do(func() {
		if s.target == nil && s.targetFunc != nil {
			s.target = s.targetFunc()
		}
	})
	return s.target
}

// DataType implements Schema.
func (s *ReferenceSchema) DataType() string {
	if s.Name != "" {
		return s.Name
	}
	return referenceTypeName
}

func (*ReferenceSchema) schema() {}

// ComplexSchema describes a mapping from property name to property schema.
type ComplexSchema struct {
	Name       string
	Properties map[string]Schema
}

// Property looks up a property schema by name.
func (s *ComplexSchema) Property(name string) (Schema, bool) {
	p, ok := s.Properties[name]
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// PropertyNames returns the property names in sorted order.
func (s *ComplexSchema) PropertyNames() []string {
	return maputil.SortedKeys(s.Properties)
}

// DataType implements Schema.
func (s *ComplexSchema) DataType() string {
	if s.Name != "" {
		return s.Name
	}
	return complexTypeName
}

func (*ComplexSchema) schema() {}

// Ensure all schema variants implement Schema at compile time.
var (
	_ Schema = (*ScalarSchema)(nil)
	_ Schema = (*ListSchema)(nil)
	_ Schema = (*ReferenceSchema)(nil)
	_ Schema = (*ComplexSchema)(nil)
)
