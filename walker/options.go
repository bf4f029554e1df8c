package walker

import "context"

// Option configures the Walker.
type Option func(*Walker)

// WithSchemaHandler sets the handler for each visited schema.
func WithSchemaHandler(fn SchemaHandler) Option {
	return func(w *Walker) { w.onSchema = fn }
}

// WithSkippedHandler sets the handler called when a schema is skipped
// because of the depth limit ("depth"), a reference cycle ("cycle") or an
// unaddressable property name ("name").
func WithSkippedHandler(fn SkippedHandler) Option {
	return func(w *Walker) { w.onSkipped = fn }
}

// WithMaxDepth sets the maximum number of segments in a visited path.
// If depth is not positive, it is silently ignored and the default (8) is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context(), and a cancelled
// context ends the walk with its error.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}
