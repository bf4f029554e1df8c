// Package dataerrors provides structured error types for dataresolver.
//
// Import path: github.com/erraggy/dataresolver/dataerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a bad path string from a malformed schema
// document or an invalid configuration.
//
// # Error Types
//
//   - [InvalidPathError]: a path segment names no property of the schema reached so far
//   - [ParseError]: YAML/JSON decoding failures and data that contradicts its schema
//   - [ReferenceError]: unknown $ref or reference targets, circular reference chains
//   - [ResourceLimitError]: documents exceeding configured limits
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrInvalidPath]: Matches any [InvalidPathError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// [ErrNotFound] has no error type; it is wrapped with %w when a root entity
// requested by id does not exist.
//
// # Usage Examples
//
// Check whether a path string is the problem:
//
//	r, err := dataresolver.Create(article).Get("uid.foo")
//	if errors.Is(err, dataerrors.ErrInvalidPath) {
//	    // the path is wrong for this type; do not retry
//	}
//
// Extract the offending segment:
//
//	var pathErr *dataerrors.InvalidPathError
//	if errors.As(err, &pathErr) {
//	    fmt.Println(pathErr.Segment, pathErr.DataType)
//	}
//
// Absence of data (an unset reference, an empty list, an index out of range)
// is never reported through this package. Failures raised by an entity store
// while loading a reference target are returned unchanged and keep the
// store's own error types.
package dataerrors
