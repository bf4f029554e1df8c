// Package commands provides the cobra commands of the dataresolver CLI.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/internal/cliutil"
	"github.com/erraggy/dataresolver/internal/fileutil"
	"github.com/erraggy/dataresolver/internal/pathutil"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return &dataerrors.ConfigError{
			Option:  "format",
			Value:   format,
			Message: fmt.Sprintf("valid formats: %s, %s, %s", FormatText, FormatJSON, FormatYAML),
		}
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", bytes)
	return nil
}

// FormatSourcePath returns a display-friendly name for an input path.
func FormatSourcePath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// withOutput runs render against the command's stdout, or against the file
// named by the output setting when one is given. Files never get colors.
func withOutput(w io.Writer, s *settings, render func(w io.Writer, pal *palette) error) error {
	outputPath := s.v.GetString("output")
	if outputPath == "" {
		return render(w, newPalette(s.colors(w)))
	}

	cleaned, err := pathutil.SanitizeOutputPath(outputPath)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(cleaned, fileutil.OutputFlags, fileutil.OwnerReadWrite) //nolint:gosec // path is sanitized above
	if err != nil {
		return fmt.Errorf("commands: creating output file: %w", err)
	}
	if err := render(f, newPalette(false)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("commands: closing output file: %w", err)
	}
	s.logger.Debug("wrote output", "path", cleaned)
	return nil
}
