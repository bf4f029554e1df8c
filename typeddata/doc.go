// Package typeddata models self-describing data trees and their schemas.
//
// Both trees are closed sum types. A [Schema] is one of [*ScalarSchema],
// [*ListSchema], [*ReferenceSchema] or [*ComplexSchema]; a [Node] is one of
// [*Scalar], [*List], [*Reference] or [*Complex]. Code that consumes them
// switches on the concrete type and handles every variant:
//
//	switch n := node.(type) {
//	case *typeddata.Complex:
//	    child, ok := n.Get("title")
//	case *typeddata.List:
//	    first, ok := n.Get(0)
//	case *typeddata.Reference:
//	    target, err := n.Target()
//	case *typeddata.Scalar:
//	    raw := n.Value()
//	}
//
// # References
//
// A [Reference] wraps exactly one target node. The target may be supplied
// up front ([NewReference]) or materialized on demand by a loader
// ([NewLazyReference]), for example from an entity store. A nil target with
// a nil error means the reference is unset. Loader errors are returned
// unchanged from [Reference.Target].
//
// # Lists
//
// A [List] holds only present items. [NewList] drops nil items and the
// remaining ones are renumbered from zero, so data [null, X] is a list of
// one item and index 0 selects X.
//
// # Raw values
//
// [Value] returns the raw value of a scalar together with an explicit
// presence flag, so 0, "" and false are never mistaken for absence.
// [Export] converts a whole subtree into plain Go values
// (map[string]any, []any and scalars).
//
// Nodes and schemas are never mutated after construction and may be shared
// between goroutines.
package typeddata
