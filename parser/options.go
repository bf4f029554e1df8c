package parser

import (
	"fmt"
	"io"

	"github.com/erraggy/dataresolver/internal/options"
	"github.com/erraggy/dataresolver/logging"
)

// DefaultMaxFileSize is the default maximum document size in bytes (10 MiB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	logger      logging.Logger
	maxFileSize int64

	// Source identification
	sourceName *string
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		logger:      logging.NopLogger{},
		maxFileSize: DefaultMaxFileSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ExactlyOne("source",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source. The path "-"
// is not special here; callers wanting stdin should use WithReader.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithMaxFileSize sets the maximum document size in bytes.
// A value of 0 uses DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("parser: maxFileSize cannot be negative")
		}
		if size == 0 {
			size = DefaultMaxFileSize
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName overrides the source path reported in results and errors.
// Useful with WithReader and WithBytes, which otherwise report a generic name.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing and
// while building typed data. By default, no logging is performed.
//
// Example:
//
//	logger := logging.NewSlogAdapter(slog.Default())
//	defs, err := parser.ParseDefinitions(
//	    parser.WithFilePath("schema.yaml"),
//	    parser.WithLogger(logger),
//	)
func WithLogger(l logging.Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}
