package pathutil

import "sync"

// Builders from the pool start with room for a path of the default walk
// depth. Builders that grew past maxPooledSegments are not pooled again.
const (
	defaultSegments   = 8
	maxPooledSegments = 32
)

var builders = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]string, 0, defaultSegments)}
	},
}

// Get returns an empty PathBuilder from the pool.
func Get() *PathBuilder {
	p := builders.Get().(*PathBuilder)
	p.Reset()
	return p
}

// Put returns p to the pool. p must not be used afterwards.
func Put(p *PathBuilder) {
	if p == nil || cap(p.segments) > maxPooledSegments {
		return
	}
	builders.Put(p)
}
