// Package pathutil provides path building utilities for schema traversal
// and output path checks for the command line.
//
// The primary type is [PathBuilder], which uses push/pop semantics to build
// dotted data paths incrementally without allocating intermediate strings.
// This is useful in recursive traversal where a path is extended on each
// recursive call but only materialized when a handler needs it.
//
// # PathBuilder Usage
//
// Use [Get] to obtain a pooled PathBuilder, and [Put] to return it:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("uid")
//	path.Push("entity")
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
// List indices are ordinary segments via [PathBuilder.PushIndex]:
//
//	path.Push("uid")
//	path.PushIndex(0) // produces "uid.0"
//
// # Output Path Sanitization
//
// [SanitizeOutputPath] cleans the path given to the CLI's --output flag.
// It rejects symlinks, directories and files in missing directories:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err
//	}
package pathutil
