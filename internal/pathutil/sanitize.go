package pathutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SanitizeOutputPath cleans an output file path and returns it as an
// absolute path. Existing symlinks and directories are rejected, and a new
// file must go into a directory that already exists.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("pathutil: empty output path")
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
		}
	case errors.Is(err, fs.ErrNotExist):
		dir := filepath.Dir(abs)
		if dirInfo, err := os.Stat(dir); err != nil || !dirInfo.IsDir() {
			return "", fmt.Errorf("pathutil: output directory does not exist: %s", dir)
		}
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	return abs, nil
}
