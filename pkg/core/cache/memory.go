package cache

import (
	"context"
	"sync"
)

// MemoryStore keeps stage results in process memory. It is the default
// backend and the one used by tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Stage]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[Stage]map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, stage Stage, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries, ok := m.data[stage]
	if !ok {
		return nil, false, nil
	}
	val, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the cached bytes.
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, stage Stage, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[stage] == nil {
		m.data[stage] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[stage][key] = stored
	return nil
}

func (m *MemoryStore) DropStage(ctx context.Context, stage Stage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, stage)
	return nil
}

// Len reports the number of entries held for a stage.
func (m *MemoryStore) Len(stage Stage) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[stage])
}
