package kvstore

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and single-process setups
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]byte
	counters    map[string]int64
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]byte),
		counters:    make(map[string]int64),
	}
}

// Read returns the document stored under key, or nil when absent
func (s *MemoryStore) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.collections[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write replaces the document stored under key
func (s *MemoryStore) Write(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.collections[key] = stored
	return nil
}

// Increment atomically increments and returns the counter under key
func (s *MemoryStore) Increment(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key]++
	return s.counters[key], nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
