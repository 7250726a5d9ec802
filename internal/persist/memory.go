package persist

import "sync"

// Memory is a map-backed Adapter. It serves as the degraded mode when local
// storage cannot be opened, and as a lightweight adapter for tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Adapter = (*Memory)(nil)

// NewMemory creates an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Load retrieves the raw value for key.
func (m *Memory) Load(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

// Save writes the raw value for key. Always succeeds.
func (m *Memory) Save(key, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return true
}

// Delete removes key. Always succeeds.
func (m *Memory) Delete(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return true
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
