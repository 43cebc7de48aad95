package session

import "sync"

// MemoryStore keeps the session keys in a map. It is what tests and the
// "memory" backend use; nothing survives the process.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

var _ Storage = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Load implements Storage.
func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.values), nil
}

// Save implements Storage.
func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = encode(s)
	m.writes++
	return nil
}

// Clear implements Storage.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string)
	m.writes++
	return nil
}

// Close implements Storage.
func (m *MemoryStore) Close() error { return nil }

// Value returns the raw stored text for key.
func (m *MemoryStore) Value(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Writes counts Save and Clear calls.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
