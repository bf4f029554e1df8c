package typeddata

import (
	"slices"

	"github.com/erraggy/dataresolver/internal/maputil"
)

// Node is a value in a typed data tree.
type Node interface {
	// Schema returns the node's schema, or nil if the node is untyped.
	Schema() Schema

	node()
}

// Scalar holds a primitive value.
type Scalar struct {
	schema Schema
	value  any
}

// NewScalar returns a scalar node holding value.
func NewScalar(schema Schema, value any) *Scalar {
	return &Scalar{schema: schema, value: value}
}

// Schema implements Node.
func (n *Scalar) Schema() Schema { return n.schema }

// Value returns the raw value.
func (n *Scalar) Value() any { return n.value }

func (*Scalar) node() {}

// List is an ordered, possibly empty sequence of nodes.
type List struct {
	schema Schema
	items  []Node
}

// NewList returns a list node. Nil items are dropped and the rest keep
// their relative order, so indices after a dropped item shift down.
func NewList(schema Schema, items ...Node) *List {
	kept := make([]Node, 0, len(items))
	for _, it := range items {
		if it != nil {
			kept = append(kept, it)
		}
	}
	return &List{schema: schema, items: kept}
}

// Schema implements Node.
func (n *List) Schema() Schema { return n.schema }

// Get returns the element at index i.
func (n *List) Get(i int) (Node, bool) {
	if i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Len returns the number of elements.
func (n *List) Len() int { return len(n.items) }

// IsEmpty reports whether the list has no elements.
func (n *List) IsEmpty() bool { return len(n.items) == 0 }

// Items returns a copy of the elements in order.
func (n *List) Items() []Node { return slices.Clone(n.items) }

func (*List) node() {}

// LoadFunc materializes the target of a lazy reference. It returns
// (nil, nil) when the reference points at nothing.
type LoadFunc func() (Node, error)

// Reference is an indirection to exactly one target node.
type Reference struct {
	schema Schema
	key    string
	target Node
	load   LoadFunc
}

// NewReference returns a reference to target. A nil target makes an unset reference.
func NewReference(schema Schema, target Node) *Reference {
	return &Reference{schema: schema, target: target}
}

// NewLazyReference returns a reference whose target is produced by load on
// every dereference. key identifies the target for display (e.g. an entity id).
func NewLazyReference(schema Schema, key string, load LoadFunc) *Reference {
	return &Reference{schema: schema, key: key, load: load}
}

// Schema implements Node.
func (n *Reference) Schema() Schema { return n.schema }

// Key returns the target identifier, if the reference was built from one.
func (n *Reference) Key() string { return n.key }

// Target dereferences the node. Loader errors are returned unchanged.
func (n *Reference) Target() (Node, error) {
	if n.load == nil {
		return n.target, nil
	}
	return n.load()
}

func (*Reference) node() {}

// Complex maps property names to child nodes.
type Complex struct {
	schema     Schema
	properties map[string]Node
}

// NewComplex returns a complex node. Properties with nil values are dropped.
func NewComplex(schema Schema, properties map[string]Node) *Complex {
	props := make(map[string]Node, len(properties))
	for name, child := range properties {
		if child != nil {
			props[name] = child
		}
	}
	return &Complex{schema: schema, properties: props}
}

// Schema implements Node.
func (n *Complex) Schema() Schema { return n.schema }

// Get returns the child node named name.
func (n *Complex) Get(name string) (Node, bool) {
	child, ok := n.properties[name]
	return child, ok
}

// Names returns the names of the present properties in sorted order.
func (n *Complex) Names() []string {
	return maputil.SortedKeys(n.properties)
}

func (*Complex) node() {}

// Ensure all node variants implement Node at compile time.
var (
	_ Node = (*Scalar)(nil)
	_ Node = (*List)(nil)
	_ Node = (*Reference)(nil)
	_ Node = (*Complex)(nil)
)

// DataType returns the display type name of n's schema, or "unknown".
func DataType(n Node) string {
	if n == nil {
		return "unknown"
	}
	s := n.Schema()
	if s == nil {
		return "unknown"
	}
	return s.DataType()
}
