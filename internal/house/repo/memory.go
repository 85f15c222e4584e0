package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
)

// MemoryStore is the default process-lifetime backend: a mutex-guarded map.
// It is also the backend the tests run against.
type MemoryStore struct {
	mu     sync.RWMutex
	houses map[int64]*entity.House
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{houses: make(map[int64]*entity.House)}
}

func (s *MemoryStore) Get(ctx context.Context, fid int64) (*entity.House, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.houses[fid]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *h
	return &cp, nil
}

func (s *MemoryStore) PutIfAbsent(ctx context.Context, h *entity.House) (*entity.House, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.houses[h.FID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	cp := *h
	s.houses[h.FID] = &cp
	out := cp
	return &out, true, nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]*entity.House, error) {
	s.mu.RLock()
	out := make([]*entity.House, 0, len(s.houses))
	for _, h := range s.houses {
		cp := *h
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].FID < out[j].FID
	})
	return out, nil
}
