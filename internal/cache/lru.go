// Package cache provides a size-bounded LRU with per-entry expiry.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type LRU[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time
	items   map[string]*list.Element
	order   *list.List
}

type item[T any] struct {
	key       string
	value     T
	expiresAt time.Time
}

func NewLRU[T any](maxSize int, ttl time.Duration) *LRU[T] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU[T]{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

// lookup returns the live value for key, dropping it if expired. Callers hold mu.
func (c *LRU[T]) lookup(key string) (T, bool) {
	var zero T
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	it := elem.Value.(*item[T])
	if c.now().After(it.expiresAt) {
		c.remove(elem)
		return zero, false
	}
	c.order.MoveToFront(elem)
	return it.value, true
}

// Set stores value under key and evicts the least recently used entry when full.
func (c *LRU[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
	c.insert(key, value)
}

func (c *LRU[T]) insert(key string, value T) {
	c.items[key] = c.order.PushFront(&item[T]{key: key, value: value, expiresAt: c.now().Add(c.ttl)})
	if c.order.Len() > c.maxSize {
		c.remove(c.order.Back())
	}
}

// GetOrSet returns the live value for key and true. Otherwise it stores value
// and returns it with false. The lookup and the store happen under one lock.
func (c *LRU[T]) GetOrSet(key string, value T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lookup(key); ok {
		return existing, true
	}
	c.insert(key, value)
	return value, false
}

func (c *LRU[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

// CleanExpired drops every expired entry and returns how many were removed.
func (c *LRU[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*item[T]).expiresAt) {
			c.remove(elem)
			removed++
		}
		elem = next
	}
	return removed
}

func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRU[T]) remove(elem *list.Element) {
	delete(c.items, elem.Value.(*item[T]).key)
	c.order.Remove(elem)
}
