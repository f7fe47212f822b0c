package history

import (
	"context"
	"fxconvert/internal/domain"
	"slices"
	"sync"
)

const DefaultCapacity = 10

// MemoryStore keeps the latest conversions in process memory, newest first.
// Contents are lost on restart.
type MemoryStore struct {
	capacity int
	mu       sync.Mutex
	entries  []domain.HistoryEntry
}

func (s *MemoryStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = slices.Insert(s.entries, 0, entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[:s.capacity]
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{capacity: capacity, entries: make([]domain.HistoryEntry, 0, capacity+1)}
}
