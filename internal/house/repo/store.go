package repo

import (
	"context"
	"errors"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
)

// ErrNotFound is returned by Get when no house exists for the fid.
var ErrNotFound = errors.New("house not found")

// Store is the persistence capability behind the house repository. Houses
// are write-once: PutIfAbsent is the only mutation and the first writer wins.
type Store interface {
	// Get returns the house for fid or ErrNotFound.
	Get(ctx context.Context, fid int64) (*entity.House, error)
	// PutIfAbsent stores h unless a house already exists for h.FID. It
	// returns the house that ended up stored and whether this call created it.
	PutIfAbsent(ctx context.Context, h *entity.House) (*entity.House, bool, error)
	// ListAll returns every house ascending by CreatedAt (fid breaks ties).
	ListAll(ctx context.Context) ([]*entity.House, error)
}
