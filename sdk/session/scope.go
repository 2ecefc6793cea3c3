package session

import "sync"

// Scope is a storage location for a single serialized session record. The
// Store holds two of them: a durable scope that survives restarts and an
// ephemeral scope that lives only as long as the current terminal (or
// process) session.
type Scope interface {
	// Read returns the stored bytes, or nil and no error if nothing is stored.
	Read() ([]byte, error)
	// Write replaces whatever is stored.
	Write([]byte) error
	// Clear removes whatever is stored. Clearing an empty scope is not an
	// error.
	Clear() error
}

// MemoryScope is a Scope backed by process memory.
type MemoryScope struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryScope returns an empty MemoryScope.
func NewMemoryScope() *MemoryScope {
	return &MemoryScope{}
}

func (m *MemoryScope) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte{}, m.data...), nil
}

func (m *MemoryScope) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte{}, data...)
	return nil
}

func (m *MemoryScope) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
