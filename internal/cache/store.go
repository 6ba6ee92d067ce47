// Package cache is the client's local persistent storage, the terminal
// counterpart of the browser's localStorage.
package cache

import (
	"fmt"
	"sync"
)

// Store is a small string key/value store that survives restarts.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Open returns the SQLite store at path, or an in-memory store when
// ephemeral is set.
func Open(path string, ephemeral bool) (Store, error) {
	if ephemeral {
		return NewMemoryStore(), nil
	}
	s, err := NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", path, err)
	}
	return s, nil
}

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
