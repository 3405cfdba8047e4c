package service

import (
	"sync"

	"github.com/google/uuid"
)

// keyMutex serializes work per uuid key. Entries are reference-counted
// and removed when the last holder unlocks, so the map does not grow
// with the id space.
type keyMutex struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*keyMutexEntry
}

type keyMutexEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyMutex() *keyMutex {
	return &keyMutex{entries: make(map[uuid.UUID]*keyMutexEntry)}
}

// Lock blocks until the key's mutex is held by the caller.
func (k *keyMutex) Lock(key uuid.UUID) {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &keyMutexEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the key's mutex. Must pair with a prior Lock.
func (k *keyMutex) Unlock(key uuid.UUID) {
	k.mu.Lock()
	e := k.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
