package walker

import (
	"context"

	"github.com/erraggy/dataresolver/internal/pathutil"
)

// WalkContext provides contextual information about the schema being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// Path is the dotted data path of the current schema. Empty at the root.
	// Example: "uid.entity.name"
	Path string

	// Name is the property name of the last path segment.
	// Empty at the root.
	Name string

	// Depth is the number of segments in Path.
	Depth int

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// IsRoot returns true if the current schema is the walk's root.
func (wc *WalkContext) IsRoot() bool {
	return wc.Depth == 0
}

// buildContext creates a WalkContext for the current path.
func (w *Walker) buildContext(path *pathutil.PathBuilder) *WalkContext {
	return &WalkContext{
		Path:  path.String(),
		Name:  path.Last(),
		Depth: path.Len(),
		ctx:   w.userCtx,
	}
}
