// Package datapath expands dotted property paths into traversal steps.
//
// A path such as "uid.0.entity.name" is split on '.' into segments. A segment
// made only of decimal digits becomes an [Indexed] step; every other segment,
// including the empty string, becomes a [Named] step. There is no escaping.
// An [Indexed] step keeps its segment text, so on an object "007" still
// selects the property named "007".
//
// Expansion never fails. Whether a step makes sense for a given type is
// decided later by the validator package.
package datapath

import (
	"strconv"
	"strings"
)

// Separator is the only path separator.
const Separator = "."

// Step is one parsed segment of a path. It is either a [Named] or an
// [Indexed] step; no other implementations exist.
type Step interface {
	// String returns the segment as it appeared in the path.
	String() string

	step()
}

// Named selects a property by name.
type Named struct {
	Name string
}

func (s Named) String() string { return s.Name }
func (Named) step()             {}

// Indexed selects one element of a list.
type Indexed struct {
	Index int
	// Raw is the segment as written, such as "007". When empty, String
	// falls back to the decimal form of Index.
	Raw string
}

func (s Indexed) String() string {
	if s.Raw != "" {
		return s.Raw
	}
	return strconv.Itoa(s.Index)
}

func (Indexed) step() {}

// Path is a parsed path together with its original string.
type Path struct {
	raw   string
	steps []Step
}

// Parse expands path and keeps the original string for error reporting.
func Parse(path string) *Path {
	return &Path{raw: path, steps: Expand(path)}
}

// String returns the original path string.
func (p *Path) String() string {
	return p.raw
}

// Len returns the number of steps.
func (p *Path) Len() int {
	return len(p.steps)
}

// IsEmpty reports whether the path designates the root itself.
func (p *Path) IsEmpty() bool {
	return len(p.steps) == 0
}

// Steps returns a copy of the expanded steps.
func (p *Path) Steps() []Step {
	out := make([]Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// Expand splits path into steps. An empty path expands to no steps,
// which means identity resolution.
func Expand(path string) []Step {
	if path == "" {
		return nil
	}

	segments := strings.Split(path, Separator)
	steps := make([]Step, 0, len(segments))
	for _, seg := range segments {
		steps = append(steps, expandSegment(seg))
	}
	return steps
}

func expandSegment(seg string) Step {
	if !isDigits(seg) {
		return Named{Name: seg}
	}
	idx, err := strconv.Atoi(seg)
	if err != nil {
		// Too large for int: no list can hold that many elements anyway.
		return Named{Name: seg}
	}
	return Indexed{Index: idx, Raw: seg}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Join renders steps back into a dotted path.
func Join(steps []Step) string {
	if len(steps) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range steps {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// HasPrefix reports whether path equals prefix or lies below it. Matching
// is by whole segments, so "uid" is not a prefix of "uid_extra". Every path
// has the empty prefix.
func HasPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+Separator)
}
