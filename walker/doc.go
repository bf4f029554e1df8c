// Package walker provides a traversal API over typed data schemas.
//
// The walker enumerates the dotted paths a schema accepts. It visits each
// schema depth-first, with properties in sorted order, and hands the
// handler the path it was reached by. Lists and references add no segment:
// they are visited at the same path as the schema they wrap, the wrapper
// first. Every path the walker produces passes validator.ValidatePath for
// the walked schema.
//
// # Quick Start
//
// List every path of a schema:
//
//	paths, err := walker.Paths(schema)
//	// [title uid uid.entity uid.entity.name ...]
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current schema, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Example using SkipChildren to avoid following references:
//
//	walker.Walk(schema,
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext, s typeddata.Schema) walker.Action {
//	        if _, ok := s.(*typeddata.ReferenceSchema); ok {
//	            return walker.SkipChildren
//	        }
//	        fmt.Println(wc.Path)
//	        return walker.Continue
//	    }),
//	)
//
// # Recursive Schemas
//
// Schemas may be recursive: a user can reference other users. Paths are
// therefore limited to [DefaultMaxDepth] segments, adjustable with
// [WithMaxDepth]. A chain of references that leads back to itself without
// reaching a property is cut short. Both cases, and property names that
// cannot be written as a path segment, are reported to the handler set with
// [WithSkippedHandler].
package walker
