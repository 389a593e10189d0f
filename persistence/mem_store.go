package persistence

import (
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for tests and ephemeral sessions
// WriteErr, when set, fails every Write to exercise degraded persistence
type MemStore struct {
	mu       sync.Mutex
	docs     map[string][]byte
	writes   int
	WriteErr error
}

// NewMemStore creates an empty store
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

func (m *MemStore) Read(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemStore) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return fmt.Errorf("write %s: %w", name, m.WriteErr)
	}
	m.docs[name] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Put seeds a document without counting it as a write
func (m *MemStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[name] = append([]byte(nil), data...)
}

// Writes returns the number of successful Write calls
func (m *MemStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
