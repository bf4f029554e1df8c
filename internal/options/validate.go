// Package options validates option combinations shared by the parser and the
// MCP tool inputs.
package options

import (
	"strings"

	"github.com/erraggy/dataresolver/dataerrors"
)

// Source is one way of supplying a document and whether it was used.
type Source struct {
	Name string
	Set  bool
}

// ExactlyOne checks that exactly one of sources is set. Otherwise it returns
// a *dataerrors.ConfigError for option naming the sources that were given.
func ExactlyOne(option string, sources ...Source) error {
	names := make([]string, 0, len(sources))
	var set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}
	if len(set) == 1 {
		return nil
	}

	got := "none"
	if len(set) > 1 {
		got = joinOr(set, "and")
	}
	return &dataerrors.ConfigError{
		Option:  option,
		Message: "exactly one of " + joinOr(names, "or") + " must be provided (got " + got + ")",
	}
}

// joinOr joins names as "a, b or c".
func joinOr(names []string, conj string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " " + conj + " " + names[len(names)-1]
}
