// Package keyedmutex provides a registry of mutexes addressed by key.
//
// The registry hands out exactly one *sync.Mutex per distinct key for its
// whole lifetime. Callers racing on the first access for a key all converge
// on the same instance. Entries are never removed, so memory grows with the
// set of distinct keys ever seen; a mutex is small enough that this is an
// acceptable tradeoff at the intended scale.
package keyedmutex

import "sync"

// Map is a per-key mutex registry. The zero value is ready to use.
type Map[K comparable] struct {
	locks sync.Map // K -> *sync.Mutex
}

// Get returns the mutex for key, creating it on first access.
// Repeated calls for the same key always return the same instance.
func (m *Map[K]) Get(key K) *sync.Mutex {
	// Fast path: the common case after first access avoids the allocation
	// LoadOrStore would make on every call.
	if v, ok := m.locks.Load(key); ok {
		return v.(*sync.Mutex)
	}

	v, _ := m.locks.LoadOrStore(key, &sync.Mutex{})

	return v.(*sync.Mutex)
}

// WithLock runs fn while holding the mutex for key.
// The mutex is released on every exit path, including a panic in fn.
func (m *Map[K]) WithLock(key K, fn func() error) error {
	mu := m.Get(key)
	mu.Lock()
	defer mu.Unlock()

	return fn()
}
