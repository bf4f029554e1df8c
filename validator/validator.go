package validator

import (
	"github.com/erraggy/dataresolver/dataerrors"
	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/logging"
	"github.com/erraggy/dataresolver/typeddata"
)

// unknownType is reported when the root schema is nil.
const unknownType = "unknown"

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger for debug output.
// Default: logging.NopLogger
func WithLogger(l logging.Logger) Option {
	return func(v *Validator) {
		v.logger = logging.OrNop(l)
	}
}

// Validator checks paths against schemas. The zero value is not usable;
// construct one with New. A Validator holds no per-call state and is safe
// for concurrent use.
type Validator struct {
	logger logging.Logger
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidatePath checks steps against root using a default Validator.
func ValidatePath(root typeddata.Schema, steps []datapath.Step, path string) error {
	return New().ValidatePath(root, steps, path)
}

// ValidatePath folds steps over the schema graph starting at root. It returns
// a *dataerrors.InvalidPathError for the first step that names no property,
// or a circular *dataerrors.ReferenceError if a chain of references never
// reaches a concrete schema. The schema reached at the end is discarded.
func (v *Validator) ValidatePath(root typeddata.Schema, steps []datapath.Step, path string) error {
	rootType := unknownType
	if root != nil {
		rootType = root.DataType()
	}

	current := root
	for i, step := range steps {
		next, err := v.applyStep(current, step, path, rootType)
		if err != nil {
			v.logger.Debug("path rejected",
				"path", path,
				"step", i,
				"segment", step.String(),
				"error", err,
			)
			return err
		}
		current = next
	}

	v.logger.Debug("path validated", "path", path, "steps", len(steps))
	return nil
}

// applyStep returns the schema reached by applying step to s. Lists and
// references are unwrapped without consuming the step; revisiting one of
// them before a step is consumed is a cycle.
func (v *Validator) applyStep(s typeddata.Schema, step datapath.Step, path, rootType string) (typeddata.Schema, error) {
	var seen map[typeddata.Schema]bool
	visit := func(sc typeddata.Schema, ref string) error {
		if seen == nil {
			seen = make(map[typeddata.Schema]bool)
		}
		if seen[sc] {
			return &dataerrors.ReferenceError{
				Ref:        ref,
				IsCircular: true,
				Message:    "schema chain does not reach a property while resolving '" + step.String() + "' in '" + path + "'",
			}
		}
		seen[sc] = true
		return nil
	}

	for {
		switch sc := s.(type) {
		case *typeddata.ListSchema:
			if _, ok := step.(datapath.Indexed); ok {
				return sc.Item, nil
			}
			if err := visit(sc, sc.DataType()); err != nil {
				return nil, err
			}
			s = sc.Item

		case *typeddata.ReferenceSchema:
			if err := visit(sc, sc.TargetType); err != nil {
				return nil, err
			}
			s = sc.Target()

		case *typeddata.ComplexSchema:
			name := step.String()
			if prop, ok := sc.Property(name); ok {
				return prop, nil
			}
			return nil, &dataerrors.InvalidPathError{
				Segment:    name,
				Path:       path,
				DataType:   rootType,
				Suggestion: v.suggest(sc, name),
			}

		default:
			// Scalars, unknown variants and missing schemas have no properties.
			return nil, &dataerrors.InvalidPathError{
				Segment:  step.String(),
				Path:     path,
				DataType: rootType,
			}
		}
	}
}
