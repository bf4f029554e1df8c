package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/internal/pathutil"
	"github.com/erraggy/dataresolver/typeddata"
)

// DefaultMaxDepth is the default maximum number of path segments.
const DefaultMaxDepth = 8

// Action controls the walker's behavior after visiting a schema.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current schema but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more schemas will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Reasons passed to a SkippedHandler.
const (
	// SkipDepth means the path would exceed the maximum depth.
	SkipDepth = "depth"
	// SkipCycle means a chain of references or lists returned to itself without
	// adding a path segment.
	SkipCycle = "cycle"
	// SkipName means the property name cannot be written as a single path
	// segment, for example because it contains a dot.
	SkipName = "name"
)

// SchemaHandler is called for each schema reached. Lists and references
// are visited at the same path as the schema they wrap, before it.
type SchemaHandler func(wc *WalkContext, s typeddata.Schema) Action

// SkippedHandler is called when a schema is not walked. reason is one of
// SkipDepth, SkipCycle or SkipName; wc.Path is the path the schema would
// have had.
type SkippedHandler func(wc *WalkContext, reason string, s typeddata.Schema)

// Walker traverses a schema graph and calls handlers for each schema.
type Walker struct {
	onSchema  SchemaHandler
	onSkipped SkippedHandler

	maxDepth int
	userCtx  context.Context

	stopped bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: DefaultMaxDepth,
	}
}

// Walk visits every schema reachable from root, depth-first, with
// properties in sorted order. Every path handed to a handler is a valid
// path for root.
//
// Example:
//
//	err := walker.Walk(schema,
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext, s typeddata.Schema) walker.Action {
//	        fmt.Println(wc.Path, s.DataType())
//	        return walker.Continue
//	    }),
//	)
func Walk(root typeddata.Schema, opts ...Option) error {
	if root == nil {
		return fmt.Errorf("walker: nil schema")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}

	path := pathutil.Get()
	defer pathutil.Put(path)

	w.stopped = false
	return w.walkSchema(root, path, nil)
}

// walkSchema visits s at the current path. pending holds the references
// and lists entered since the last segment was pushed.
func (w *Walker) walkSchema(s typeddata.Schema, path *pathutil.PathBuilder, pending map[typeddata.Schema]bool) error {
	if s == nil || w.stopped {
		return nil
	}
	if err := w.context().Err(); err != nil {
		return err
	}

	switch s.(type) {
	case *typeddata.ReferenceSchema, *typeddata.ListSchema:
		if pending[s] {
			w.skip(path, SkipCycle, s)
			return nil
		}
		if pending == nil {
			pending = make(map[typeddata.Schema]bool)
		}
		pending[s] = true
		defer delete(pending, s)
	}

	if w.onSchema != nil {
		wc := w.buildContext(path)
		if !w.handleAction(w.onSchema(wc, s)) {
			return nil
		}
	}

	switch sc := s.(type) {
	case *typeddata.ReferenceSchema:
		return w.walkSchema(sc.Target(), path, pending)
	case *typeddata.ListSchema:
		return w.walkSchema(sc.Item, path, pending)
	case *typeddata.ComplexSchema:
		return w.walkProperties(sc, path)
	}
	return nil
}

// walkProperties walks each property of sc one segment deeper.
func (w *Walker) walkProperties(sc *typeddata.ComplexSchema, path *pathutil.PathBuilder) error {
	for _, name := range sc.PropertyNames() {
		prop, _ := sc.Property(name)
		if prop == nil {
			continue
		}

		path.Push(name)
		var err error
		switch {
		case !addressable(name):
			w.skip(path, SkipName, prop)
		case path.Len() > w.maxDepth:
			w.skip(path, SkipDepth, prop)
		default:
			err = w.walkSchema(prop, path, nil)
		}
		path.Pop()

		if err != nil {
			return err
		}
		if w.stopped {
			return nil
		}
	}
	return nil
}

// addressable reports whether name survives path parsing as the same single
// property segment.
func addressable(name string) bool {
	steps := datapath.Expand(name)
	return len(steps) == 1 && steps[0].String() == name
}

func (w *Walker) skip(path *pathutil.PathBuilder, reason string, s typeddata.Schema) {
	if w.onSkipped != nil {
		w.onSkipped(w.buildContext(path), reason, s)
	}
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

func (w *Walker) context() context.Context {
	if w.userCtx == nil {
		return context.Background()
	}
	return w.userCtx
}
