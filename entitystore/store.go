// Package entitystore looks up the entities that references point at.
//
// A [Store] returns the raw decoded value of an entity (a map[string]any
// tree, as produced by the parser package) by type and id. A [Loader] turns
// those lookups into [typeddata.LoadFunc] values so references can be
// materialized lazily, one load per dereference.
//
// Missing entities are not errors: Load reports found=false and the loader
// turns that into an unset reference. Errors from a store are passed through
// unchanged so callers can match them with errors.Is.
package entitystore

import (
	"sync"

	"github.com/erraggy/dataresolver/internal/maputil"
)

// Store looks up entities by type and id.
type Store interface {
	// Load returns the raw value of the entity. found is false if no such
	// entity exists.
	Load(entityType, id string) (value any, found bool, err error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(entityType, id string) (any, bool, error)

// Load implements Store.
func (f StoreFunc) Load(entityType, id string) (any, bool, error) {
	return f(entityType, id)
}

// Memory is a Store backed by maps. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	entities map[string]map[string]any
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entities: make(map[string]map[string]any)}
}

// Put stores value as the entity entityType/id, replacing any existing one.
func (m *Memory) Put(entityType, id string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID, ok := m.entities[entityType]
	if !ok {
		byID = make(map[string]any)
		m.entities[entityType] = byID
	}
	byID[id] = value
}

// PutAll stores every entity of a type -> id -> value mapping, such as the
// one returned by parser.ParseEntities.
func (m *Memory) PutAll(entities map[string]map[string]any) {
	for entityType, byID := range entities {
		for id, value := range byID {
			m.Put(entityType, id, value)
		}
	}
}

// Load implements Store.
func (m *Memory) Load(entityType, id string) (any, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entities[entityType][id]
	return value, ok, nil
}

// Types returns the entity types held, sorted.
func (m *Memory) Types() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maputil.SortedKeys(m.entities)
}

// IDs returns the ids of all entities of entityType, sorted.
func (m *Memory) IDs(entityType string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maputil.SortedKeys(m.entities[entityType])
}

// Len returns the total number of entities.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, byID := range m.entities {
		n += len(byID)
	}
	return n
}

// Ensure Memory implements Store at compile time.
var (
	_ Store = (*Memory)(nil)
	_ Store = StoreFunc(nil)
)
