// Package calculator implements the balance engine: pure functions that
// replay a trip's transaction logs into per-member net balances and the
// viewer's pairwise owed/owing decomposition.
//
// Everything in this package is total over well-formed input, mutates
// nothing, and is safe for concurrent use. A transaction referencing a
// member that is not on the trip is a data-integrity bug in the storage
// layer and is reported as an error rather than silently zeroed.
package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/tripkitty/tripkitty/internal/models"
)

// MemberBalance is one row of the viewer's balance summary.
type MemberBalance struct {
	MemberID   string
	MemberName string

	// NetBalance is the member's aggregate position across all expenses
	// and payments. Positive = net creditor, negative = net debtor.
	NetBalance float64

	// OwedToViewer is the positive delta of the member's net balance over
	// the viewer's. Under the two-party netting reading, that differential
	// is owed to the viewer. Zero unless the member's balance exceeds the
	// viewer's.
	OwedToViewer float64

	// ViewerOwes is the absolute delta when the member's balance is below
	// the viewer's. At most one of OwedToViewer and ViewerOwes is non-zero.
	ViewerOwes float64
}

// ComputeNetBalances replays the three transaction logs and returns each
// member's signed net balance. Every trip member appears in the result, so
// members with no activity map to zero.
//
// Replay rules:
//   - expense: the payer is credited the full amount, each participant is
//     debited their share (a payer who also participates nets out to the
//     amount others owe them)
//   - payment and ad-hoc payment, treated identically: the payer is debited,
//     the receiver is credited
//
// The result is independent of replay order within and across the logs.
func ComputeNetBalances(members []models.Member, expenses []models.Expense, payments []models.Payment, adhocPayments []models.AdhocPayment) (map[string]float64, error) {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}

	credit := func(id string, amount float64, kind, txID string) error {
		if _, ok := balances[id]; !ok {
			return fmt.Errorf("%s %s references unknown member %q", kind, txID, id)
		}
		balances[id] += amount
		return nil
	}

	for _, e := range expenses {
		if err := credit(e.PaidByID, e.Amount, "expense", e.ID); err != nil {
			return nil, err
		}
		for _, s := range e.Shares {
			if err := credit(s.MemberID, -s.Amount, "expense", e.ID); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range payments {
		if err := credit(p.PayerID, -p.Amount, "payment", p.ID); err != nil {
			return nil, err
		}
		if err := credit(p.ReceiverID, p.Amount, "payment", p.ID); err != nil {
			return nil, err
		}
	}

	for _, p := range adhocPayments {
		if err := credit(p.PayerID, -p.Amount, "adhoc payment", p.ID); err != nil {
			return nil, err
		}
		if err := credit(p.ReceiverID, p.Amount, "adhoc payment", p.ID); err != nil {
			return nil, err
		}
	}

	return balances, nil
}

// PairwiseView decomposes the viewer's position into one row per other
// member, ordered by net balance descending (creditors first); ties keep
// member-list order.
//
// The owed/owes figures use a simplifying two-party netting heuristic: the
// delta between the member's and the viewer's independent net balances. This
// is NOT a settlement-minimizing decomposition of the transaction graph;
// with more than two members the figure may not correspond to any actual set
// of transactions between the two specific parties.
func PairwiseView(members []models.Member, balances map[string]float64, viewerID string) []MemberBalance {
	viewerBalance := balances[viewerID]

	rows := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		if m.ID == viewerID {
			continue
		}
		row := MemberBalance{
			MemberID:   m.ID,
			MemberName: m.Name,
			NetBalance: balances[m.ID],
		}
		delta := row.NetBalance - viewerBalance
		if delta > 0 {
			row.OwedToViewer = delta
		} else if delta < 0 {
			row.ViewerOwes = math.Abs(delta)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].NetBalance > rows[j].NetBalance
	})

	return rows
}

// Contribution is one member's total ad-hoc funding of the central keeper.
type Contribution struct {
	MemberID   string
	MemberName string
	Total      float64
}

// KeeperContributions sums each member's ad-hoc payments to the trip's
// central keeper. The keeper is excluded from the rows; the second return
// value is the total the keeper has received. Rows are ordered by total
// contributed descending, ties keeping member-list order.
//
// Returns nil rows when the trip has no central keeper.
func KeeperContributions(trip *models.Trip, adhocPayments []models.AdhocPayment) ([]Contribution, float64) {
	if trip.CentralKeeperID == "" {
		return nil, 0
	}

	totals := make(map[string]float64, len(trip.Members))
	received := 0.0
	for _, p := range adhocPayments {
		if p.ReceiverID != trip.CentralKeeperID {
			continue
		}
		totals[p.PayerID] += p.Amount
		received += p.Amount
	}

	rows := make([]Contribution, 0, len(trip.Members))
	for _, m := range trip.Members {
		if m.ID == trip.CentralKeeperID {
			continue
		}
		rows = append(rows, Contribution{
			MemberID:   m.ID,
			MemberName: m.Name,
			Total:      totals[m.ID],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	return rows, received
}
