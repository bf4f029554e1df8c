package typeddata

// DefaultExportDepth is the number of references [Export] follows along
// any single branch before it stops.
const DefaultExportDepth = 4

// Value returns the raw value held by a scalar node. The boolean is false
// when n is nil or not a scalar; a scalar holding 0, "" or false is present.
func Value(n Node) (any, bool) {
	s, ok := n.(*Scalar)
	if !ok || s == nil {
		return nil, false
	}
	return s.value, true
}

// Export converts the subtree rooted at n into plain Go values: scalars
// become their raw value, lists become []any and complex nodes become
// map[string]any. References are followed up to DefaultExportDepth deep;
// deeper references and unset references export as nil.
func Export(n Node) (any, error) {
	return ExportDepth(n, DefaultExportDepth)
}

// ExportDepth is Export with an explicit reference depth.
func ExportDepth(n Node, depth int) (any, error) {
	switch v := n.(type) {
	case nil:
		return nil, nil
	case *Scalar:
		return v.value, nil
	case *List:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			x, err := ExportDepth(item, depth)
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	case *Complex:
		out := make(map[string]any, len(v.properties))
		for name, child := range v.properties {
			x, err := ExportDepth(child, depth)
			if err != nil {
				return nil, err
			}
			out[name] = x
		}
		return out, nil
	case *Reference:
		if depth <= 0 {
			return nil, nil
		}
		target, err := v.Target()
		if err != nil {
			return nil, err
		}
		return ExportDepth(target, depth-1)
	default:
		return nil, nil
	}
}
