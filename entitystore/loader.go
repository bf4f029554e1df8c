package entitystore

import (
	"github.com/erraggy/dataresolver/logging"
	"github.com/erraggy/dataresolver/typeddata"
)

// BuildFunc converts the raw value of an entity of entityType into a node.
type BuildFunc func(entityType string, value any) (typeddata.Node, error)

// Loader produces reference loaders backed by a Store.
type Loader struct {
	store  Store
	build  BuildFunc
	logger logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used to trace entity loads.
func WithLoaderLogger(l logging.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = logging.OrNop(l)
	}
}

// NewLoader returns a Loader that reads from store and converts values with build.
func NewLoader(store Store, build BuildFunc, opts ...LoaderOption) *Loader {
	ld := &Loader{
		store:  store,
		build:  build,
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Func returns a LoadFunc for the entity entityType/id. Each call of the
// returned function performs a fresh lookup. A missing entity yields
// (nil, nil); store errors are returned unchanged.
func (ld *Loader) Func(entityType, id string) typeddata.LoadFunc {
	return func() (typeddata.Node, error) {
		return ld.Load(entityType, id)
	}
}

// Load looks up and builds the entity entityType/id.
func (ld *Loader) Load(entityType, id string) (typeddata.Node, error) {
	value, found, err := ld.store.Load(entityType, id)
	if err != nil {
		ld.logger.Debug("entity load failed", "type", entityType, "id", id, "error", err)
		return nil, err
	}
	if !found {
		ld.logger.Debug("entity not found", "type", entityType, "id", id)
		return nil, nil
	}
	ld.logger.Debug("entity loaded", "type", entityType, "id", id)
	return ld.build(entityType, value)
}
