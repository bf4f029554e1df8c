// Package fileutil holds the file modes used when writing output.
package fileutil

import "os"

// OwnerReadWrite is the mode of files written by the CLI. Resolved values
// may carry entity data, so only the owner can read them.
const OwnerReadWrite os.FileMode = 0o600

// OutputFlags opens an output file for writing, creating or truncating it.
const OutputFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
