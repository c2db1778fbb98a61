package calculator

import (
	"fmt"
	"math"

	"github.com/tripkitty/tripkitty/internal/models"
)

// AmountTolerance is how far a split's resolved shares may drift from the
// expense total (and percentages from 100) before the input is rejected,
// in currency units.
const AmountTolerance = 0.01

// floatSlack absorbs float64 representation error when comparing a drift
// against the tolerance, so a sum that is exactly at the boundary (e.g.
// percentages totalling 99.99) is still accepted.
const floatSlack = 1e-9

// ResolveSplit derives per-participant shares for an expense from its split
// type. The returned shares sum to amount within AmountTolerance.
//
//   - EQUAL: amount / participant count. No remainder distribution: shares
//     of an amount not evenly divisible by the count will not sum
//     cent-exactly, matching the tolerance model used everywhere else.
//   - EXACT_AMOUNTS: caller-supplied amounts per participant; a participant
//     missing from the map contributes zero. The sum must equal amount
//     within AmountTolerance.
//   - PERCENTAGES: amount * percentage / 100 per participant; percentages
//     must sum to 100 within AmountTolerance.
func ResolveSplit(amount float64, splitType models.SplitType, participants []string, exactAmounts, percentages map[string]float64) ([]models.Share, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %.2f", amount)
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	shares := make([]models.Share, 0, len(participants))

	switch splitType {
	case models.SplitEqual:
		perPerson := amount / float64(len(participants))
		for _, id := range participants {
			shares = append(shares, models.Share{MemberID: id, Amount: perPerson})
		}

	case models.SplitExactAmounts:
		sum := 0.0
		for _, id := range participants {
			share := exactAmounts[id]
			if share < 0 {
				return nil, fmt.Errorf("share for %s must not be negative", id)
			}
			sum += share
			shares = append(shares, models.Share{MemberID: id, Amount: share})
		}
		if drift := math.Abs(sum - amount); drift > AmountTolerance+floatSlack {
			return nil, fmt.Errorf("exact amounts sum to %.2f, expense total is %.2f", sum, amount)
		}

	case models.SplitPercentages:
		sum := 0.0
		for _, id := range participants {
			pct := percentages[id]
			if pct < 0 {
				return nil, fmt.Errorf("percentage for %s must not be negative", id)
			}
			sum += pct
			shares = append(shares, models.Share{MemberID: id, Amount: amount * pct / 100})
		}
		if drift := math.Abs(sum - 100); drift > AmountTolerance+floatSlack {
			return nil, fmt.Errorf("percentages sum to %.2f, must total 100", sum)
		}

	default:
		return nil, fmt.Errorf("unknown split type %q", splitType)
	}

	return shares, nil
}
