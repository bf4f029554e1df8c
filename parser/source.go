package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/dataresolver/dataerrors"
)

// SourceFormat represents the format of a source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// source is a document read into memory.
type source struct {
	data   []byte
	path   string
	format SourceFormat
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON typically starts with '{' or '[', while YAML does not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// readSource loads the configured input, enforcing the size limit.
func readSource(cfg *parseConfig) (*source, error) {
	src := &source{}

	switch {
	case cfg.filePath != nil:
		src.path = *cfg.filePath
		info, err := os.Stat(src.path)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		if info.Size() > cfg.maxFileSize {
			return nil, sizeError(cfg.maxFileSize, info.Size(), src.path)
		}
		data, err := os.ReadFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		src.data = data
		src.format = detectFormatFromPath(src.path)

	case cfg.reader != nil:
		src.path = "ParseReader"
		data, err := io.ReadAll(io.LimitReader(cfg.reader, cfg.maxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read data: %w", err)
		}
		if int64(len(data)) > cfg.maxFileSize {
			return nil, sizeError(cfg.maxFileSize, 0, src.path)
		}
		src.data = data

	case cfg.bytes != nil:
		src.path = "ParseBytes"
		if int64(len(cfg.bytes)) > cfg.maxFileSize {
			return nil, sizeError(cfg.maxFileSize, int64(len(cfg.bytes)), src.path)
		}
		src.data = cfg.bytes

	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("parser: no input source specified")
	}

	if src.format == "" || src.format == SourceFormatUnknown {
		src.format = detectFormatFromContent(src.data)
	}
	if cfg.sourceName != nil {
		src.path = *cfg.sourceName
	}

	cfg.logger.Debug("read document",
		"source", src.path,
		"format", string(src.format),
		"size", FormatBytes(int64(len(src.data))),
	)
	return src, nil
}

func sizeError(limit, actual int64, path string) error {
	return &dataerrors.ResourceLimitError{
		ResourceType: "file_size",
		Limit:        limit,
		Actual:       actual,
		Message:      "document " + path + " exceeds " + FormatBytes(limit),
	}
}

// unmarshal decodes src into out. JSON sources use encoding/json; all
// others are decoded as YAML.
func (src *source) unmarshal(out any) error {
	var err error
	if src.format == SourceFormatJSON {
		err = json.Unmarshal(src.data, out)
	} else {
		err = yaml.Unmarshal(src.data, out)
	}
	if err != nil {
		return &dataerrors.ParseError{
			Path:    src.path,
			Message: "invalid " + string(src.format) + " document",
			Cause:   err,
		}
	}
	return nil
}
