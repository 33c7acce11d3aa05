// Package cache provides content-hash memoization of per-table
// validation results, so that re-validating a table whose rows are
// byte-for-byte unchanged from a previous run skips the five-layer
// substrate entirely.
package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// ResultCache caches validation findings by table content hash.
type ResultCache interface {
	Get(contentHash string) ([]byte, bool)
	Set(contentHash string, result []byte, ttl time.Duration) error
	Clear()
	Stats() Stats
}

// Stats reports cache performance for the report's diagnostics section.
type Stats struct {
	Size       int           `json:"size"`
	MaxSize    int           `json:"maxSize"`
	Hits       int64         `json:"hits"`
	Misses     int64         `json:"misses"`
	Evictions  int64         `json:"evictions"`
	HitRate    float64       `json:"hitRate"`
	AverageAge time.Duration `json:"averageAge"`
}

type entry struct {
	result      []byte
	cachedAt    time.Time
	expiresAt   time.Time
	contentHash string
	element     *list.Element
}

// MemoryResultCache is an in-memory LRU+TTL cache keyed by content hash.
type MemoryResultCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	lru     *list.List
	maxSize int

	hits      int64
	misses    int64
	evictions int64
}

// Options configures a MemoryResultCache.
type Options struct {
	MaxEntries int
}

// DefaultOptions returns sensible defaults: enough entries to hold one
// cached result per canonical table across many runs without growing
// unbounded.
func DefaultOptions() Options {
	return Options{MaxEntries: 256}
}

// NewMemoryResultCache creates a cache with the given options.
func NewMemoryResultCache(opts Options) *MemoryResultCache {
	if opts.MaxEntries <= 0 {
		opts = DefaultOptions()
	}
	return &MemoryResultCache{
		entries: make(map[string]*entry),
		lru:     list.New(),
		maxSize: opts.MaxEntries,
	}
}

// Get retrieves a cached result, evicting it transparently if expired.
func (c *MemoryResultCache) Get(contentHash string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[contentHash]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeLocked(contentHash, e)
		c.misses++
		return nil, false
	}

	c.lru.MoveToFront(e.element)
	c.hits++
	return e.result, true
}

// Set stores a result under contentHash for ttl, evicting the least
// recently used entry if the cache is at capacity.
func (c *MemoryResultCache) Set(contentHash string, result []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[contentHash]; ok {
		existing.result = result
		existing.cachedAt = time.Now()
		existing.expiresAt = time.Now().Add(ttl)
		c.lru.MoveToFront(existing.element)
		return nil
	}

	e := &entry{
		result:      result,
		cachedAt:    time.Now(),
		expiresAt:   time.Now().Add(ttl),
		contentHash: contentHash,
	}
	e.element = c.lru.PushFront(contentHash)
	c.entries[contentHash] = e

	c.evictIfNeeded()
	return nil
}

// Clear removes every cached entry and resets statistics.
func (c *MemoryResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.lru = list.New()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Stats reports current cache performance.
func (c *MemoryResultCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	var totalAge time.Duration
	now := time.Now()
	for _, e := range c.entries {
		if !now.After(e.expiresAt) {
			totalAge += now.Sub(e.cachedAt)
		}
	}
	avgAge := time.Duration(0)
	if len(c.entries) > 0 {
		avgAge = totalAge / time.Duration(len(c.entries))
	}

	return Stats{
		Size:       len(c.entries),
		MaxSize:    c.maxSize,
		Hits:       c.hits,
		Misses:     c.misses,
		Evictions:  c.evictions,
		HitRate:    hitRate,
		AverageAge: avgAge,
	}
}

func (c *MemoryResultCache) evictIfNeeded() {
	for len(c.entries) > c.maxSize {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		hash := oldest.Value.(string)
		if e, ok := c.entries[hash]; ok {
			c.removeLocked(hash, e)
			c.evictions++
		}
	}
}

func (c *MemoryResultCache) removeLocked(contentHash string, e *entry) {
	delete(c.entries, contentHash)
	if e.element != nil {
		c.lru.Remove(e.element)
	}
}

// ComputeContentHash hashes a table's rows via their canonical JSON
// encoding, so that two assignments of byte-for-byte identical data
// produce the same key regardless of slice identity.
func ComputeContentHash(rows interface{}) (string, error) {
	b, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%x", sum), nil
}
