package walker

import (
	"github.com/erraggy/dataresolver/typeddata"
)

// PathInfo describes one path collected during a walk.
type PathInfo struct {
	// Path is the dotted data path.
	Path string

	// Name is the property name of the last segment.
	Name string

	// DataType is the display type of the schema the path ends at, after
	// unwrapping lists and references.
	DataType string

	// Multiple is true when a list was crossed on the way, so the path can
	// resolve to more than one value.
	Multiple bool
}

// Paths returns every non-empty path of root in walk order.
//
// Any WithSchemaHandler option is replaced by the collector's own handler.
func Paths(root typeddata.Schema, opts ...Option) ([]string, error) {
	infos, err := CollectPaths(root, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Path
	}
	return out, nil
}

// CollectPaths walks root and describes every non-empty path in walk order.
//
// Any WithSchemaHandler option is replaced by the collector's own handler.
func CollectPaths(root typeddata.Schema, opts ...Option) ([]*PathInfo, error) {
	var (
		all      []*PathInfo
		byPath   = make(map[string]*PathInfo)
		multiple = make(map[string]bool)
	)

	collect := WithSchemaHandler(func(wc *WalkContext, s typeddata.Schema) Action {
		if wc.IsRoot() {
			if _, ok := s.(*typeddata.ListSchema); ok {
				multiple[""] = true
			}
			return Continue
		}

		info, seen := byPath[wc.Path]
		if !seen {
			info = &PathInfo{
				Path:     wc.Path,
				Name:     wc.Name,
				Multiple: multiple[parentPath(wc.Path, wc.Name)],
			}
			byPath[wc.Path] = info
			all = append(all, info)
		}
		// The last schema visited at a path is the unwrapped one.
		info.DataType = s.DataType()
		if _, ok := s.(*typeddata.ListSchema); ok {
			info.Multiple = true
		}
		multiple[wc.Path] = info.Multiple
		return Continue
	})

	if err := Walk(root, append(opts, collect)...); err != nil {
		return nil, err
	}
	return all, nil
}

// parentPath strips the last segment, name, from path.
func parentPath(path, name string) string {
	if len(path) == len(name) {
		return ""
	}
	return path[:len(path)-len(name)-1]
}
