// Package dataresolver resolves dotted property paths against typed data trees.
//
// A path such as "uid.0.entity.name" is split on dots into steps. Segments
// made only of decimal digits are list indices; every other segment names a
// property. The path is first checked against the schema of the root node,
// so a misspelled property fails immediately, and is then applied to the
// data. Multivalued fields and references are handled transparently: a
// named step applied to a list is applied to every element, and a reference
// is followed wherever it is reached.
//
// # Quick Start
//
//	article := ... // a typeddata.Node, e.g. built by the parser package
//
//	res, err := dataresolver.Create(article).Get("uid.entity.name.value")
//	if err != nil {
//		log.Fatal(err) // *dataerrors.InvalidPathError
//	}
//	values, err := res.Values()
//	if err != nil {
//		log.Fatal(err) // returned unchanged from the entity store
//	}
//	fmt.Println(values) // [user0]
//
// Or in one call:
//
//	nodes, err := dataresolver.Resolve(article, "uid.entity.name")
//
// # Results
//
// A resolution is always a slice. An empty path resolves to the root node
// alone. A path that reaches nothing, because a list is empty, an index is
// out of range or a reference is unset, resolves to an empty slice; absence
// is never an error. Raw scalar values are read with [typeddata.Value],
// which reports presence separately so 0, "" and false are kept.
//
// # Packages
//
//   - datapath: path expansion into Named and Indexed steps
//   - validator: schema checks with the error messages shown to callers
//   - resolver: the traversal
//   - typeddata: the Schema and Node sum types
//   - parser: schema and entities documents in YAML or JSON
//   - entitystore: lookup of referenced entities
//   - walker: enumeration of every valid path of a schema
//   - dataerrors: structured errors for errors.Is and errors.As
//   - logging: the Logger interface and a log/slog adapter
//
// The dataresolver command exposes the same operations from the shell and
// as MCP tools.
package dataresolver
