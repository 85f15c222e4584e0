package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
	houserepo "github.com/andrasetya/realestate-rizz/internal/house/repo"
	voterepo "github.com/andrasetya/realestate-rizz/internal/vote/repo"
)

type fixture struct {
	houses *houserepo.MemoryStore
	votes  *voterepo.MemoryStore
	svc    *Service
}

func newFixture() *fixture {
	houses := houserepo.NewMemoryStore()
	votes := voterepo.NewMemoryStore()
	return &fixture{houses: houses, votes: votes, svc: NewService(houses, votes)}
}

func (f *fixture) addHouse(t *testing.T, fid int64, createdAt time.Time) {
	t.Helper()
	_, _, err := f.houses.PutIfAbsent(context.Background(), &entity.House{
		FID:       fid,
		Username:  "owner",
		HouseType: "Corner house but neighbors own the parking",
		PriceLine: "Rp 500M, but the neighborhood group chat is priceless.",
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
}

func (f *fixture) addVotes(t *testing.T, target int64, voters ...int64) {
	t.Helper()
	for _, v := range voters {
		added, err := f.votes.Add(context.Background(), target, v)
		require.NoError(t, err)
		require.True(t, added)
	}
}

func TestRankFiltersZeroVoteHouses(t *testing.T) {
	f := newFixture()
	now := time.Now().UTC()
	f.addHouse(t, 1, now)
	f.addHouse(t, 2, now.Add(time.Second))
	f.addVotes(t, 2, 100)

	for _, limit := range []int{1, 5, 100} {
		entries, err := f.svc.Rank(context.Background(), limit)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(2), entries[0].FID)
	}
}

func TestRankOrdering(t *testing.T) {
	f := newFixture()
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)

	// H1: 3 votes, oldest; H2: 5 votes; H3: 3 votes, newest
	f.addHouse(t, 1, t1)
	f.addHouse(t, 2, t2)
	f.addHouse(t, 3, t3)
	f.addVotes(t, 1, 100, 101, 102)
	f.addVotes(t, 2, 100, 101, 102, 103, 104)
	f.addVotes(t, 3, 100, 101, 102)

	entries, err := f.svc.Rank(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// H2 first on votes; H1 before H3 on earlier createdAt at 3 votes each
	assert.Equal(t, int64(2), entries[0].FID)
	assert.Equal(t, int64(1), entries[1].FID)
	assert.Equal(t, int64(3), entries[2].FID)

	assert.Equal(t, 5, entries[0].VoteCount)
	assert.Equal(t, 3, entries[1].VoteCount)
	assert.Equal(t, 3, entries[2].VoteCount)
}

func TestRankTruncates(t *testing.T) {
	f := newFixture()
	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.addHouse(t, 1, t1)
	f.addHouse(t, 2, t1.Add(time.Minute))
	f.addHouse(t, 3, t1.Add(2*time.Minute))
	f.addVotes(t, 1, 100, 101, 102)
	f.addVotes(t, 2, 100, 101, 102, 103, 104)
	f.addVotes(t, 3, 100, 101, 102)

	entries, err := f.svc.Rank(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].FID)
}

func TestRankDefaultLimit(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for fid := int64(1); fid <= 15; fid++ {
		f.addHouse(t, fid, base.Add(time.Duration(fid)*time.Second))
		f.addVotes(t, fid, 100)
	}

	// limit <= 0 falls back to the default of 10
	entries, err := f.svc.Rank(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, DefaultLimit)
}

func TestRankEmptyState(t *testing.T) {
	f := newFixture()
	entries, err := f.svc.Rank(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
