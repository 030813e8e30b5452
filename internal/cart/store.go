package cart

import (
	"context"
	"sync"
)

// Store is the persistence port for cart sessions. Load returns nil (not an
// error) when no state exists for the key; Save overwrites last-writer-wins.
type Store interface {
	Save(ctx context.Context, key string, s *State) error
	Load(ctx context.Context, key string) (*State, error)
}

// MemoryStore keeps sessions in process memory. Used in tests and when the
// service runs without a database.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Save(_ context.Context, key string, s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Items = append([]Item(nil), s.Items...)
	m.states[key] = cp
	return nil
}

func (m *MemoryStore) Load(_ context.Context, key string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[key]
	if !ok {
		return nil, nil
	}
	cp := st
	cp.Items = append([]Item(nil), st.Items...)
	return &cp, nil
}
