package storage

import (
	"slices"
	"sync"
)

// Backend is the durable key-value medium behind the persistence service.
//
// The service uses exactly two keys, one per collection, each holding a
// serialized JSON array of records. Read reports absence via its second
// return value rather than an error so a fresh medium is not a failure.
type Backend interface {
	Read(key string) ([]byte, bool, error)
	Write(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// MemoryBackend is a map-backed [Backend] for tests and ephemeral sessions.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string][]byte)}
}

func (m *MemoryBackend) Read(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(value), true, nil
}

func (m *MemoryBackend) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = slices.Clone(value)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
