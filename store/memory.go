package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps collections in process memory. Used by tests and as a
// throwaway backend when no data dir is wanted.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, collection string, out interface{}) error {
	s.mu.RLock()
	raw, ok := s.data[collection]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, out)
}

func (s *MemoryStore) Save(_ context.Context, collection string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[collection] = raw
	s.mu.Unlock()
	return nil
}
