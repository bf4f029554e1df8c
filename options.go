package dataresolver

import (
	"github.com/erraggy/dataresolver/logging"
	"github.com/erraggy/dataresolver/typeddata"
)

// Option configures a DataResolver.
type Option func(*config)

// config holds the settings shared by every resolution of a DataResolver.
type config struct {
	logger      logging.Logger
	exportDepth int
}

func applyOptions(opts ...Option) *config {
	cfg := &config{
		logger:      logging.NopLogger{},
		exportDepth: typeddata.DefaultExportDepth,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger for validation and traversal traces.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logging.OrNop(l)
	}
}

// WithExportDepth sets how many references Resolution.Values follows when
// converting resolved subtrees to plain values. Negative values are treated
// as zero.
// Default: typeddata.DefaultExportDepth
func WithExportDepth(depth int) Option {
	return func(cfg *config) {
		cfg.exportDepth = max(depth, 0)
	}
}
