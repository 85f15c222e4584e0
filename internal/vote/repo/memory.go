package repo

import (
	"context"
	"sync"
)

// MemoryStore keeps one voter set per target behind a single mutex, making
// check-then-insert atomic per call.
type MemoryStore struct {
	mu     sync.RWMutex
	voters map[int64]map[int64]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{voters: make(map[int64]map[int64]struct{})}
}

func (s *MemoryStore) Add(ctx context.Context, targetFID, voterFID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.voters[targetFID]
	if !ok {
		set = make(map[int64]struct{})
		s.voters[targetFID] = set
	}
	if _, dup := set[voterFID]; dup {
		return false, nil
	}
	set[voterFID] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Contains(ctx context.Context, targetFID, voterFID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.voters[targetFID][voterFID]
	return ok, nil
}

func (s *MemoryStore) CountFor(ctx context.Context, targetFID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.voters[targetFID]), nil
}
