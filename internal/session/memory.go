package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the id for the life of the process.
type MemoryStore struct {
	mu sync.Mutex
	id string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.id == "" {
		return "", ErrNotFound
	}
	return m.id, nil
}

func (m *MemoryStore) Save(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
	return nil
}
