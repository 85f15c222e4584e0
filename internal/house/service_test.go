package house

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
	"github.com/andrasetya/realestate-rizz/internal/house/repo"
)

// countingGenerator wraps the real generator and counts invocations.
type countingGenerator struct {
	inner *Generator
	calls int64
}

func (c *countingGenerator) Generate(p entity.Profile) entity.House {
	atomic.AddInt64(&c.calls, 1)
	return c.inner.Generate(p)
}

func newTestService() (*Service, *countingGenerator) {
	gen := &countingGenerator{inner: NewGenerator(NewLockedRand(rand.NewSource(7)))}
	return NewService(repo.NewMemoryStore(), gen), gen
}

func TestGetOrCreateIdempotent(t *testing.T) {
	svc, gen := newTestService()
	ctx := context.Background()
	p := entity.Profile{FID: 42, Username: "alice", FollowerCount: 100, FollowingCount: 10}

	first, err := svc.GetOrCreate(ctx, p)
	require.NoError(t, err)
	require.Equal(t, int64(42), first.FID)
	require.False(t, first.CreatedAt.IsZero())

	for i := 0; i < 5; i++ {
		again, err := svc.GetOrCreate(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&gen.calls))
}

func TestGetOrCreateFreezesProfileDrift(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, entity.Profile{FID: 9, Username: "bob", FollowerCount: 1, FollowingCount: 100})
	require.NoError(t, err)

	// wildly different counts on the repeat call must not re-randomize
	again, err := svc.GetOrCreate(ctx, entity.Profile{FID: 9, Username: "bob", FollowerCount: 9999, FollowingCount: 1})
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGetOrCreateConcurrentRace(t *testing.T) {
	svc, gen := newTestService()
	ctx := context.Background()
	p := entity.Profile{FID: 77, Username: "carol", FollowerCount: 10, FollowingCount: 10}

	const n = 64
	results := make([]*entity.House, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GetOrCreate(ctx, p)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}
	for i := 1; i < n; i++ {
		assert.Equal(t, results[0], results[i])
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&gen.calls), "generator must run once per fid")

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetByFID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.GetByFID(ctx, 123)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := svc.GetOrCreate(ctx, entity.Profile{FID: 123, Username: "dave", FollowerCount: 5, FollowingCount: 5})
	require.NoError(t, err)

	got, err := svc.GetByFID(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestListAllOrderedByCreation(t *testing.T) {
	gen := &countingGenerator{inner: NewGenerator(NewLockedRand(rand.NewSource(1)))}
	svc := NewService(repo.NewMemoryStore(), gen)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ctx := context.Background()
	for _, fid := range []int64{30, 10, 20} {
		_, err := svc.GetOrCreate(ctx, entity.Profile{FID: fid, Username: "u", FollowerCount: 1, FollowingCount: 1})
		require.NoError(t, err)
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{30, 10, 20}, []int64{all[0].FID, all[1].FID, all[2].FID})
	assert.True(t, all[0].CreatedAt.Before(all[1].CreatedAt))
	assert.True(t, all[1].CreatedAt.Before(all[2].CreatedAt))
}
