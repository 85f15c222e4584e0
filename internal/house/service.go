package house

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
	"github.com/andrasetya/realestate-rizz/internal/house/repo"
	"github.com/andrasetya/realestate-rizz/internal/metrics"
)

// ErrNotFound re-exported so callers do not need to import the repo package.
var ErrNotFound = repo.ErrNotFound

// generator abstracts the procedural generator so tests can count and stub
// invocations. *Generator is the production implementation.
type generator interface {
	Generate(p entity.Profile) entity.House
}

// Service owns the house lifecycle: generate once per fid, then serve the
// frozen record forever.
type Service struct {
	store repo.Store
	gen   generator
	group singleflight.Group
	now   func() time.Time
}

func NewService(store repo.Store, gen generator) *Service {
	return &Service{store: store, gen: gen, now: time.Now}
}

// GetOrCreate returns the house for profile.FID, generating it on the first
// call. Repeat calls ignore any drift in the profile's follower counts: the
// record is frozen at creation. Concurrent first-time calls for the same fid
// collapse into a single generation (the store's PutIfAbsent is the final
// arbiter), so the generator runs at most once per fid.
func (s *Service) GetOrCreate(ctx context.Context, p entity.Profile) (*entity.House, error) {
	if h, err := s.store.Get(ctx, p.FID); err == nil {
		return h, nil
	} else if err != repo.ErrNotFound {
		return nil, err
	}

	v, err, _ := s.group.Do(strconv.FormatInt(p.FID, 10), func() (any, error) {
		// re-check under the flight: another caller may have just created it
		if h, err := s.store.Get(ctx, p.FID); err == nil {
			return h, nil
		} else if err != repo.ErrNotFound {
			return nil, err
		}
		h := s.gen.Generate(p)
		h.CreatedAt = s.now().UTC()
		stored, created, err := s.store.PutIfAbsent(ctx, &h)
		if err != nil {
			return nil, err
		}
		if created {
			metrics.HousesGenerated.Inc()
		}
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.House), nil
}

// GetByFID is a pure lookup; it never creates.
func (s *Service) GetByFID(ctx context.Context, fid int64) (*entity.House, error) {
	return s.store.Get(ctx, fid)
}

// ListAll returns every house ascending by creation time (gallery view).
func (s *Service) ListAll(ctx context.Context) ([]*entity.House, error) {
	return s.store.ListAll(ctx)
}

// Store exposes the underlying store for read-side collaborators
// (vote existence checks, leaderboard projection).
func (s *Service) Store() repo.Store { return s.store }
