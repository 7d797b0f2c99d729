// Package cache provides a size-bounded LRU for values that never go stale,
// such as page models built from the immutable dataset.
package cache

import (
	"container/list"
	"sync"
)

// LRU evicts the least recently used entry once maxSize is exceeded.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[K]*list.Element
	order   *list.List

	hits   uint64
	misses uint64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Stats is a snapshot of cache usage.
type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// NewLRU creates an LRU holding at most maxSize entries; values below one
// are treated as one.
func NewLRU[K comparable, V any](maxSize int) *LRU[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU[K, V]{
		maxSize: maxSize,
		items:   make(map[K]*list.Element),
		order:   list.New(),
	}
}

// GetOrCreate returns the cached value for key, building and storing it on a
// miss. build runs under the cache lock and must not call back into c.
func (c *LRU[K, V]) GetOrCreate(key K, build func() V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.hits++
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}

	c.misses++
	v := build()
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: v})
	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		delete(c.items, oldest.Value.(*entry[K, V]).key)
		c.order.Remove(oldest)
	}
	return v, false
}

func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Size: c.order.Len()}
}
