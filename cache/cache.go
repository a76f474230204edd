// Package cache provides a thread-safe, sharded LRU cache used by the
// render registry to keep shaped, positioned lines across re-renders at
// an unchanged font scale.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// ShardCount is the number of shards for reduced lock contention.
	// Must be a power of 2 for fast modulo via bitwise AND.
	ShardCount = 16

	// DefaultCapacity is the default maximum entries per shard. A full
	// 15-line page render touches 15 keys, so the default comfortably
	// covers the pages a reader flips between.
	DefaultCapacity = 64

	// shardMask is used for fast shard selection (ShardCount - 1).
	shardMask = ShardCount - 1
)

// Hasher computes a hash for a key, used for shard selection.
type Hasher[K any] func(K) uint64

// StringHasher computes FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher returns the key itself as the hash (identity hash).
func Uint64Hasher(u uint64) uint64 { return u }

// Stats holds cache observability counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Sharded is a thread-safe, sharded LRU cache.
//
// Each of the 16 shards has its own mutex and LRU list; statistics are
// atomic counters so reads allocate nothing. Values are stored as-is, not
// copied; callers must treat cached values as immutable.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int // per-shard

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// shard is a single shard of the cache.
type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[K, V]
	lru     *lruList[K]
}

// entry holds a cached value with its LRU node.
type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a sharded cache with the given per-shard capacity.
// Total capacity is approximately capacity * 16. If capacity <= 0,
// DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*entry[K, V]),
			lru:     newLRUList[K](),
		}
	}
	return c
}

// getShard selects the shard for a key via bitwise AND on the hash.
func (c *Sharded[K, V]) getShard(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a cached value by key. On a hit the entry moves to the
// front of its shard's LRU list.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	sh := c.getShard(key)

	// Fast path: read lock to check existence.
	sh.mu.RLock()
	_, exists := sh.entries[key]
	sh.mu.RUnlock()

	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	// Slow path: write lock for the LRU update. Re-check after acquiring
	// (the entry may have been evicted between locks).
	sh.mu.Lock()
	e, ok := sh.entries[key]
	if !ok {
		sh.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	sh.lru.MoveToFront(e.node)
	value := e.value
	sh.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores a value. If the shard exceeds capacity, oldest entries are
// evicted.
func (c *Sharded[K, V]) Set(key K, value V) {
	sh := c.getShard(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if existing, ok := sh.entries[key]; ok {
		existing.value = value
		sh.lru.MoveToFront(existing.node)
		return
	}

	for sh.lru.Len() >= c.capacity {
		oldest, ok := sh.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(sh.entries, oldest)
		c.evictions.Add(1)
	}

	sh.entries[key] = &entry[K, V]{value: value, node: sh.lru.PushFront(key)}
}

// GetOrCreate returns the cached value or creates it. The create function
// runs with the shard lock held, preventing duplicate computation for one
// key; keep it fast.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	sh := c.getShard(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	// Re-check after acquiring the write lock.
	if e, ok := sh.entries[key]; ok {
		sh.lru.MoveToFront(e.node)
		c.hits.Add(1)
		return e.value
	}

	c.misses.Add(1)
	value := create()

	for sh.lru.Len() >= c.capacity {
		oldest, ok := sh.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(sh.entries, oldest)
		c.evictions.Add(1)
	}

	sh.entries[key] = &entry[K, V]{value: value, node: sh.lru.PushFront(key)}
	return value
}

// Delete removes an entry, reporting whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	sh := c.getShard(key)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, ok := sh.entries[key]
	if !ok {
		return false
	}
	sh.lru.Remove(e.node)
	delete(sh.entries, key)
	return true
}

// Clear removes all entries.
func (c *Sharded[K, V]) Clear() {
	for _, sh := range c.shards {
		sh.mu.Lock()
		sh.entries = make(map[K]*entry[K, V])
		sh.lru.Clear()
		sh.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, sh := range c.shards {
		sh.mu.RLock()
		total += len(sh.entries)
		sh.mu.RUnlock()
	}
	return total
}

// Stats returns current cache statistics.
func (c *Sharded[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
