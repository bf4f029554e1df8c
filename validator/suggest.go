package validator

import (
	"github.com/erraggy/dataresolver/typeddata"
	"golang.org/x/text/cases"
)

// suggest returns the property of s whose name matches name under Unicode
// case folding, or "" if there is none. Properties are scanned in sorted
// order so the result is deterministic.
func (v *Validator) suggest(s *typeddata.ComplexSchema, name string) string {
	// A Caser carries state and must not be shared between goroutines.
	fold := cases.Fold()
	want := fold.String(name)
	for _, candidate := range s.PropertyNames() {
		if candidate == name {
			continue
		}
		if _, ok := s.Property(candidate); !ok {
			continue
		}
		if fold.String(candidate) == want {
			return candidate
		}
	}
	return ""
}
