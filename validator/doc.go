// Package validator checks dotted paths against typed data schemas.
//
// Validation walks the schema graph one step at a time before any data is
// touched, so a misspelled property name fails fast instead of silently
// resolving to nothing.
//
// # Rules
//
// For the schema reached so far:
//
//   - A list schema accepts an index step and moves to its item schema. A
//     named step is applied to the item schema instead, so "uid.entity"
//     means the entity of every uid item.
//   - A reference schema is replaced by its target and the same step is
//     applied again.
//   - A complex schema must have a property named by the step. Index steps
//     are looked up by their decimal string.
//   - A scalar schema has no properties.
//
// Indices are never bounds checked: "uid.5" is valid whenever uid is a list.
//
// # Errors
//
// A failing step yields a [*dataerrors.InvalidPathError] naming the segment,
// the full path and the display type of the root schema:
//
//	'foo' is not a valid property name in the path 'uid.foo' for the given entity:node:article.
//
// When the complex schema has a property that differs only by case, the
// error carries a suggestion. A chain of references that loops back on
// itself without reaching a property fails with a circular
// [*dataerrors.ReferenceError].
//
// # Usage
//
//	err := validator.ValidatePath(schema, datapath.Expand("uid.entity.name"), "uid.entity.name")
//	if errors.Is(err, dataerrors.ErrInvalidPath) {
//	    // bad path
//	}
package validator
