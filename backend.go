package fetchstate

import (
	"github.com/motoki317/lru"
)

// backend stores cached responses by locator.
// Backend implementations does NOT need to be goroutine-safe.
type backend[K comparable, V any] interface {
	// Get the value for key.
	Get(key K) (v V, ok bool)
	// Set the value for key.
	Set(key K, v V)
	// Delete the value for key.
	Delete(key K)
	// Purge all values.
	Purge()
	// Size returns the number of stored values.
	Size() int
	// Capacity returns the maximum number of stored values, or -1 if unbounded.
	Capacity() int
}

type mapBackend[K comparable, V any] map[K]V

func newMapBackend[K comparable, V any](cap int) backend[K, V] {
	return mapBackend[K, V](make(map[K]V, cap))
}

func (m mapBackend[K, V]) Get(key K) (v V, ok bool) {
	v, ok = m[key]
	return
}

func (m mapBackend[K, V]) Set(key K, v V) {
	m[key] = v
}

func (m mapBackend[K, V]) Delete(key K) {
	delete(m, key)
}

func (m mapBackend[K, V]) Purge() {
	clear(m)
}

func (m mapBackend[K, V]) Size() int {
	return len(m)
}

func (m mapBackend[K, V]) Capacity() int {
	return -1
}

type lruBackend[K comparable, V any] struct {
	*lru.Cache[K, V]
	capacity int
}

func newLRUBackend[K comparable, V any](cap int) backend[K, V] {
	return lruBackend[K, V]{
		Cache:    lru.New[K, V](lru.WithCapacity(cap)),
		capacity: cap,
	}
}

func (l lruBackend[K, V]) Delete(key K) {
	l.Cache.Delete(key) // Function signature differs a bit
}

func (l lruBackend[K, V]) Purge() {
	l.Cache.Flush()
}

func (l lruBackend[K, V]) Size() int {
	return l.Cache.Len()
}

func (l lruBackend[K, V]) Capacity() int {
	return l.capacity
}
