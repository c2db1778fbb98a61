package service

import (
	"context"

	"github.com/tripkitty/tripkitty/internal/calculator"
	"github.com/tripkitty/tripkitty/internal/storage"
)

// BalanceService loads a trip's transaction logs and runs the balance engine.
// The engine is pure, so every read simply replays the full log; there is no
// cached state to invalidate.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// BalanceSummary is the engine output for one viewer.
type BalanceSummary struct {
	// Currency is the trip's currency label.
	Currency string

	// ViewerBalance is the acting user's own net balance.
	ViewerBalance float64

	// NetBalances maps every member to their signed net balance.
	NetBalances map[string]float64

	// Members is the viewer's pairwise view, creditors first.
	Members []calculator.MemberBalance

	// TotalExpenses is the sum of all expense amounts on the trip.
	TotalExpenses float64
}

// Summary computes the viewer's balance summary for a trip.
func (s *BalanceService) Summary(ctx context.Context, tripID, viewerID string) (*BalanceSummary, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(viewerID) == nil {
		return nil, ErrPermissionDenied
	}

	expenses, err := s.store.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx, tripID)
	if err != nil {
		return nil, err
	}
	adhoc, err := s.store.ListAdhocPayments(ctx, tripID)
	if err != nil {
		return nil, err
	}

	balances, err := calculator.ComputeNetBalances(trip.Members, expenses, payments, adhoc)
	if err != nil {
		// A transaction referencing a non-member means the stored data is
		// corrupt; surface it instead of papering over.
		return nil, err
	}

	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}

	return &BalanceSummary{
		Currency:      trip.Currency,
		ViewerBalance: balances[viewerID],
		NetBalances:   balances,
		Members:       calculator.PairwiseView(trip.Members, balances, viewerID),
		TotalExpenses: total,
	}, nil
}

// KeeperSummary is the central keeper's contribution overview.
type KeeperSummary struct {
	KeeperID      string
	KeeperName    string
	Currency      string
	TotalReceived float64
	Contributions []calculator.Contribution
}

// Keeper computes the keeper contribution summary for a trip. Returns a
// validation error when the trip has no central keeper.
func (s *BalanceService) Keeper(ctx context.Context, tripID, viewerID string) (*KeeperSummary, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(viewerID) == nil {
		return nil, ErrPermissionDenied
	}
	if trip.CentralKeeperID == "" {
		return nil, invalidf("trip has no central money keeper")
	}

	adhoc, err := s.store.ListAdhocPayments(ctx, tripID)
	if err != nil {
		return nil, err
	}

	contributions, received := calculator.KeeperContributions(trip, adhoc)
	summary := &KeeperSummary{
		KeeperID:      trip.CentralKeeperID,
		Currency:      trip.Currency,
		TotalReceived: received,
		Contributions: contributions,
	}
	if keeper := trip.MemberByID(trip.CentralKeeperID); keeper != nil {
		summary.KeeperName = keeper.Name
	}
	return summary, nil
}
