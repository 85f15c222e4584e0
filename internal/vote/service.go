package vote

import (
	"context"
	"errors"

	houserepo "github.com/andrasetya/realestate-rizz/internal/house/repo"
	"github.com/andrasetya/realestate-rizz/internal/metrics"
	"github.com/andrasetya/realestate-rizz/internal/vote/repo"
	"github.com/andrasetya/realestate-rizz/pkg/utilities"
)

// Voting precondition failures. The messages are user-facing: the mini-app
// shows the exact reason back to the voter.
var (
	ErrSelfVote       = errors.New("You cannot vote for your own house.")
	ErrTargetNotFound = errors.New("Target house does not exist yet.")
	ErrDuplicateVote  = errors.New("You already voted for this house.")
)

// Receipt is returned on a successful vote.
type Receipt struct {
	TargetFID int64  `json:"targetFid"`
	VoteCount int    `json:"voteCount"`
	ReceiptID string `json:"receiptId"`
}

// Service is the anti-abuse vote ledger: one vote per voter per target,
// no self votes, votes only for houses that exist.
type Service struct {
	store  repo.Store
	houses houserepo.Store
}

func NewService(store repo.Store, houses houserepo.Store) *Service {
	return &Service{store: store, houses: houses}
}

// Vote records voterFID's vote for targetFID. Preconditions are checked in
// order and the first failure wins: self-vote, then target existence, then
// duplication. Recorded votes are never removed.
func (s *Service) Vote(ctx context.Context, voterFID, targetFID int64) (*Receipt, error) {
	if voterFID == targetFID {
		metrics.VotesRejected.WithLabelValues("self_vote").Inc()
		return nil, ErrSelfVote
	}

	if _, err := s.houses.Get(ctx, targetFID); err != nil {
		if errors.Is(err, houserepo.ErrNotFound) {
			metrics.VotesRejected.WithLabelValues("target_not_found").Inc()
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	added, err := s.store.Add(ctx, targetFID, voterFID)
	if err != nil {
		return nil, err
	}
	if !added {
		metrics.VotesRejected.WithLabelValues("duplicate").Inc()
		return nil, ErrDuplicateVote
	}

	count, err := s.store.CountFor(ctx, targetFID)
	if err != nil {
		return nil, err
	}
	metrics.VotesAccepted.Inc()
	return &Receipt{
		TargetFID: targetFID,
		VoteCount: count,
		ReceiptID: utilities.NewSnowflakeID(),
	}, nil
}

// CountFor returns the distinct-voter count for targetFID.
func (s *Service) CountFor(ctx context.Context, targetFID int64) (int, error) {
	return s.store.CountFor(ctx, targetFID)
}
