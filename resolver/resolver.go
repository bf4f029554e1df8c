// Package resolver traverses typed data trees along expanded paths.
//
// Resolution is a fold over the steps, carrying the ordered set of nodes
// reached so far. Lists fan out named steps to every element and select a
// single element for index steps. References are dereferenced whenever they
// are reached, before the current step is applied, whatever the property
// holding them is called. Missing data prunes a branch silently; the only
// error a resolution can return is one raised while loading a reference
// target, and it is returned unchanged.
//
// Paths are not validated here. Callers that want invalid property names
// reported should run the validator package first; the root dataresolver
// package does both.
//
// Reference chains are assumed to be acyclic. Every reference that is
// reached is dereferenced before the step is applied, so a reference whose
// target is itself would never terminate.
package resolver

import (
	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/logging"
	"github.com/erraggy/dataresolver/typeddata"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for step traces.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.OrNop(l)
	}
}

// Resolver applies paths to data trees. It holds no per-call state and is
// safe for concurrent use.
type Resolver struct {
	logger logging.Logger
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve applies steps to root using a default Resolver.
func Resolve(root typeddata.Node, steps []datapath.Step) ([]typeddata.Node, error) {
	return New().Resolve(root, steps)
}

// Resolve returns every node reachable from root by steps, in traversal
// order. The result is never nil: no steps yields []Node{root} (even for a
// nil root), and a nil root with steps yields an empty slice.
func (r *Resolver) Resolve(root typeddata.Node, steps []datapath.Step) ([]typeddata.Node, error) {
	if len(steps) == 0 {
		return []typeddata.Node{root}, nil
	}
	if root == nil {
		return []typeddata.Node{}, nil
	}

	current := []typeddata.Node{root}
	for i, step := range steps {
		next := make([]typeddata.Node, 0, len(current))
		for _, node := range current {
			var err error
			next, err = applyStep(next, node, step)
			if err != nil {
				r.logger.Debug("reference load failed", "step", i, "segment", step.String(), "error", err)
				return nil, err
			}
		}
		r.logger.Debug("applied step", "step", i, "segment", step.String(), "in", len(current), "out", len(next))
		current = next
		if len(current) == 0 {
			break
		}
	}

	return current, nil
}

// applyStep appends the contribution of node for step to out.
func applyStep(out []typeddata.Node, node typeddata.Node, step datapath.Step) ([]typeddata.Node, error) {
	switch n := node.(type) {
	case *typeddata.Complex:
		if child, ok := n.Get(step.String()); ok {
			out = append(out, child)
		}
		return out, nil

	case *typeddata.List:
		if n.IsEmpty() {
			return out, nil
		}
		if idx, ok := step.(datapath.Indexed); ok {
			if item, ok := n.Get(idx.Index); ok {
				out = append(out, item)
			}
			return out, nil
		}
		for i := 0; i < n.Len(); i++ {
			item, _ := n.Get(i)
			var err error
			if out, err = applyStep(out, item, step); err != nil {
				return nil, err
			}
		}
		return out, nil

	case *typeddata.Reference:
		target, err := n.Target()
		if err != nil {
			return nil, err
		}
		if target == nil {
			return out, nil
		}
		return applyStep(out, target, step)

	default:
		// Scalars have no properties.
		return out, nil
	}
}
