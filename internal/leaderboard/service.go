// Package leaderboard derives the ranked house view from the house and vote
// stores. It owns no state of its own.
package leaderboard

import (
	"context"
	"sort"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
	houserepo "github.com/andrasetya/realestate-rizz/internal/house/repo"
	voterepo "github.com/andrasetya/realestate-rizz/internal/vote/repo"
)

const DefaultLimit = 10

type Service struct {
	houses houserepo.Store
	votes  voterepo.Store
}

func NewService(houses houserepo.Store, votes voterepo.Store) *Service {
	return &Service{houses: houses, votes: votes}
}

// Rank returns at most limit entries: houses with at least one vote, sorted
// by vote count descending, then creation time ascending, then fid. The
// result is deterministic for a fixed store state; under concurrent writes
// counts may be slightly stale, which is acceptable.
func (s *Service) Rank(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	houses, err := s.houses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]entity.LeaderboardEntry, 0, len(houses))
	for _, h := range houses {
		count, err := s.votes.CountFor(ctx, h.FID)
		if err != nil {
			return nil, err
		}
		if count <= 0 {
			continue
		}
		entries = append(entries, entity.LeaderboardEntry{
			FID:       h.FID,
			Username:  h.Username,
			HouseType: h.HouseType,
			PriceLine: h.PriceLine,
			VoteCount: count,
			CreatedAt: h.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].VoteCount != entries[j].VoteCount {
			return entries[i].VoteCount > entries[j].VoteCount
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].FID < entries[j].FID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
