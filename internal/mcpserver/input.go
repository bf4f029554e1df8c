package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/dataresolver/entitystore"
	"github.com/erraggy/dataresolver/internal/options"
	"github.com/erraggy/dataresolver/parser"
)

// docInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// isSet reports whether any source was given.
func (d *docInput) isSet() bool {
	return d != nil && (d.File != "" || d.Content != "")
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry[T any] struct {
	result    T
	insertAt  time.Time
	expiresAt time.Time
}

// docCache provides a session-scoped cache of parsed documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. Entries expire after a TTL and a background sweeper
// removes expired entries.
type docCache[T any] struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry[T]
	maxSize        int
	sweeperStarted atomic.Bool
}

func newDocCache[T any](maxSize int) *docCache[T] {
	return &docCache[T]{
		entries: make(map[string]*cacheEntry[T]),
		maxSize: maxSize,
	}
}

var (
	schemaCache   = newDocCache[*parser.Definitions](cfg.CacheMaxSize)
	entitiesCache = newDocCache[map[string]map[string]any](cfg.CacheMaxSize)
)

// get returns a cached result. Expired entries are lazily removed.
func (c *docCache[T]) get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	// Touch entry for LRU.
	e.insertAt = time.Now()
	return e.result, true
}

// putWithTTL stores a result with a specific TTL, evicting the oldest entry if at capacity.
func (c *docCache[T]) putWithTTL(key string, result T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry[T]{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *docCache[T]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *docCache[T]) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *docCache[T]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry[T])
}

// size returns the number of cached entries.
func (c *docCache[T]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey creates a cache key for the input, or "" when it cannot be cached.
func (d docInput) cacheKey() string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// options checks the input and returns the parser options reading it.
func (d docInput) options() ([]parser.Option, error) {
	if err := options.ExactlyOne("document",
		options.Source{Name: "file", Set: d.File != ""},
		options.Source{Name: "content", Set: d.Content != ""},
	); err != nil {
		return nil, err
	}

	if d.Content != "" && int64(len(d.Content)) > cfg.MaxContentSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; set DATARESOLVER_MAX_CONTENT_SIZE to increase",
			len(d.Content), cfg.MaxContentSize)
	}

	opts := []parser.Option{parser.WithMaxFileSize(cfg.MaxContentSize)}
	if d.File != "" {
		return append(opts, parser.WithFilePath(d.File)), nil
	}
	return append(opts, parser.WithReader(strings.NewReader(d.Content)), parser.WithSourceName("content")), nil
}

// cached parses the input with parse, using cache when caching is enabled.
func cached[T any](d docInput, cache *docCache[T], parse func(...parser.Option) (T, error)) (T, error) {
	var zero T
	opts, err := d.options()
	if err != nil {
		return zero, err
	}

	var key string
	if cfg.CacheEnabled {
		key = d.cacheKey()
	}
	if key != "" {
		if result, ok := cache.get(key); ok {
			return result, nil
		}
	}

	result, err := parse(opts...)
	if err != nil {
		return zero, err
	}
	if key != "" {
		cache.putWithTTL(key, result, cfg.CacheTTL)
	}
	return result, nil
}

// definitions parses the input as a schema document.
func (d docInput) definitions() (*parser.Definitions, error) {
	return cached(d, schemaCache, parser.ParseDefinitions)
}

// store parses the input as an entities document into a new store. A nil
// input yields an empty store.
func (d *docInput) store() (*entitystore.Memory, error) {
	store := entitystore.NewMemory()
	if !d.isSet() {
		return store, nil
	}
	entities, err := cached(*d, entitiesCache, parser.ParseEntities)
	if err != nil {
		return nil, err
	}
	store.PutAll(entities)
	return store, nil
}

// value parses the input as a single data document. Values are not cached.
func (d docInput) value() (any, error) {
	opts, err := d.options()
	if err != nil {
		return nil, err
	}
	return parser.ParseValue(opts...)
}
