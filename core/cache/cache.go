// Package cache provides LRU caching for loaded datasets. A full Bible
// text is a few megabytes of nested maps; the version library keeps
// recently used datasets here, keyed by content hash, so switching back
// to a recent version does not reload and re-decode the file.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/versecast/versecast/core/scripture"
)

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	MaxSize   int
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of entries (0 = unlimited).
	MaxSize int

	// TTL is the time-to-live for entries (0 = no expiration).
	TTL time.Duration
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize: 8,
		TTL:     0,
	}
}

// entry represents a cache entry.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// LRU is a thread-safe least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu        sync.RWMutex
	config    Config
	entries   map[K]*list.Element
	evictList *list.List
	stats     Stats
}

// NewLRU creates an LRU cache with the given configuration.
func NewLRU[K comparable, V any](config Config) *LRU[K, V] {
	if config.MaxSize < 0 {
		config.MaxSize = 0
	}

	return &LRU[K, V]{
		config:    config,
		entries:   make(map[K]*list.Element),
		evictList: list.New(),
	}
}

// Get retrieves a value, counting a miss for absent or expired keys.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	e := ent.Value.(*entry[K, V])
	if c.config.TTL > 0 && time.Now().After(e.expiresAt) {
		c.removeElement(ent)
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(ent)
	c.stats.Hits++
	return e.value, true
}

// Put stores a value, evicting the least recently used entry when the
// cache is full.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.evictList.MoveToFront(ent)
		e := ent.Value.(*entry[K, V])
		e.value = value
		if c.config.TTL > 0 {
			e.expiresAt = time.Now().Add(c.config.TTL)
		}
		return
	}

	e := &entry[K, V]{
		key:   key,
		value: value,
	}
	if c.config.TTL > 0 {
		e.expiresAt = time.Now().Add(c.config.TTL)
	}

	ent := c.evictList.PushFront(e)
	c.entries[key] = ent

	if c.config.MaxSize > 0 && c.evictList.Len() > c.config.MaxSize {
		c.removeOldest()
	}
}

// Remove removes a value from the cache.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.entries[key]; ok {
		c.removeElement(ent)
	}
}

// Clear removes all entries from the cache.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries in the cache.
func (c *LRU[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.evictList.Len()
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *LRU[K, V]) removeOldest() {
	ent := c.evictList.Back()
	if ent != nil {
		c.removeElement(ent)
		c.stats.Evictions++
	}
}

func (c *LRU[K, V]) removeElement(ent *list.Element) {
	c.evictList.Remove(ent)
	e := ent.Value.(*entry[K, V])
	delete(c.entries, e.key)
}

// DatasetCache is a specialized cache for loaded datasets, keyed by the
// content hash of the dataset file.
type DatasetCache struct {
	lru *LRU[string, *scripture.Dataset]
}

// NewDatasetCache creates a new dataset cache.
func NewDatasetCache(config Config) *DatasetCache {
	return &DatasetCache{
		lru: NewLRU[string, *scripture.Dataset](config),
	}
}

// NewDefaultDatasetCache creates a dataset cache with the default
// configuration. Datasets are large, so the default limit is small.
func NewDefaultDatasetCache() *DatasetCache {
	return NewDatasetCache(DefaultConfig())
}

// Get retrieves a dataset from the cache by its content hash.
func (c *DatasetCache) Get(hash string) (*scripture.Dataset, bool) {
	return c.lru.Get(hash)
}

// Put stores a dataset in the cache.
func (c *DatasetCache) Put(hash string, ds *scripture.Dataset) {
	c.lru.Put(hash, ds)
}

// Remove removes a dataset from the cache.
func (c *DatasetCache) Remove(hash string) {
	c.lru.Remove(hash)
}

// Clear removes all datasets from the cache.
func (c *DatasetCache) Clear() {
	c.lru.Clear()
}

// Len returns the number of cached datasets.
func (c *DatasetCache) Len() int {
	return c.lru.Len()
}

// Stats returns cache statistics.
func (c *DatasetCache) Stats() Stats {
	return c.lru.Stats()
}
