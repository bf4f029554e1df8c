package dataresolver

import (
	"github.com/erraggy/dataresolver/datapath"
	"github.com/erraggy/dataresolver/resolver"
	"github.com/erraggy/dataresolver/typeddata"
	"github.com/erraggy/dataresolver/validator"
)

// DataResolver resolves paths against one data tree.
type DataResolver struct {
	data      typeddata.Node
	validator *validator.Validator
	resolver  *resolver.Resolver
	cfg       *config
}

// Create returns a DataResolver for data. data may be nil, in which case
// every non-empty path resolves to nothing.
func Create(data typeddata.Node, opts ...Option) *DataResolver {
	cfg := applyOptions(opts...)
	return &DataResolver{
		data:      data,
		validator: validator.New(validator.WithLogger(cfg.logger)),
		resolver:  resolver.New(resolver.WithLogger(cfg.logger)),
		cfg:       cfg,
	}
}

// Data returns the root node.
func (d *DataResolver) Data() typeddata.Node {
	return d.data
}

// Get expands path and validates it against the schema of the root node.
// It returns a *dataerrors.InvalidPathError when path names a property the
// schema does not have. Untyped roots (nil data or a nil schema) are not
// validated.
func (d *DataResolver) Get(path string) (*Resolution, error) {
	p := datapath.Parse(path)

	if d.data != nil {
		if schema := d.data.Schema(); schema != nil {
			if err := d.validator.ValidatePath(schema, p.Steps(), p.String()); err != nil {
				return nil, err
			}
		}
	}

	return &Resolution{
		data:     d.data,
		path:     p,
		resolver: d.resolver,
		cfg:      d.cfg,
	}, nil
}

// Resolution is a validated path bound to a data tree.
type Resolution struct {
	data     typeddata.Node
	path     *datapath.Path
	resolver *resolver.Resolver
	cfg      *config
}

// Path returns the path as given to Get.
func (r *Resolution) Path() string {
	return r.path.String()
}

// Resolve traverses the data and returns every node the path reaches, in
// order. An empty path returns the root as the only element. Nothing found
// is an empty, non-nil slice. Errors from loading references are returned
// unchanged.
func (r *Resolution) Resolve() ([]typeddata.Node, error) {
	return r.resolver.Resolve(r.data, r.path.Steps())
}

// Values resolves the path and converts each resolved node to a plain Go
// value with typeddata.Export. Unset references become nil.
func (r *Resolution) Values() ([]any, error) {
	nodes, err := r.Resolve()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		v, err := typeddata.ExportDepth(n, r.cfg.exportDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Resolve validates path against data and resolves it in one call.
func Resolve(data typeddata.Node, path string, opts ...Option) ([]typeddata.Node, error) {
	res, err := Create(data, opts...).Get(path)
	if err != nil {
		return nil, err
	}
	return res.Resolve()
}
