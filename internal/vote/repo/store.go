package repo

import "context"

// Store is the vote ledger's persistence capability. The ledger is
// append-only: voters are only ever added to a target's set, never removed.
type Store interface {
	// Add records (target, voter) and reports whether the pair was new.
	// The presence check and the insert are a single atomic step.
	Add(ctx context.Context, targetFID, voterFID int64) (bool, error)
	// Contains reports whether voter already voted for target.
	Contains(ctx context.Context, targetFID, voterFID int64) (bool, error)
	// CountFor returns the distinct-voter count for target, 0 if unknown.
	CountFor(ctx context.Context, targetFID int64) (int, error)
}
