package models

// SplitType is the rule used to divide an expense among its participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly among all participants.
	SplitEqual SplitType = "EQUAL"
	// SplitExactAmounts uses caller-supplied per-participant amounts.
	SplitExactAmounts SplitType = "EXACT_AMOUNTS"
	// SplitPercentages divides the amount by caller-supplied percentages.
	SplitPercentages SplitType = "PERCENTAGES"
)

// Valid reports whether s is one of the known split types.
func (s SplitType) Valid() bool {
	switch s {
	case SplitEqual, SplitExactAmounts, SplitPercentages:
		return true
	}
	return false
}

// Expense categories, used for display grouping only.
const (
	CategoryFood          = "FOOD"
	CategoryTransport     = "TRANSPORT"
	CategoryAccommodation = "ACCOMMODATION"
	CategoryEntertainment = "ENTERTAINMENT"
	CategoryShopping      = "SHOPPING"
	CategoryGeneral       = "GENERAL"
)

// Share is one participant's resolved portion of an expense.
type Share struct {
	// MemberID is the participant's user ID.
	MemberID string

	// Amount is how much this participant owes for the expense.
	Amount float64
}

// Expense represents a shared cost paid by one member and split among
// participants. Shares are resolved at creation time from the split type;
// their sum equals Amount within the accepted tolerance.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Title is the human-readable name for the expense.
	Title string

	// Description is an optional free-form note.
	Description string

	// Category is one of the Category* constants; defaults to GENERAL.
	Category string

	// Amount is the full expense amount, always positive.
	Amount float64

	// PaidByID is the member who paid the expense.
	PaidByID string

	// SplitType records how Shares were derived.
	SplitType SplitType

	// Shares are the resolved per-participant amounts.
	Shares []Share

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ParticipantIDs returns the member IDs of all participants, in share order.
func (e *Expense) ParticipantIDs() []string {
	ids := make([]string, len(e.Shares))
	for i, s := range e.Shares {
		ids[i] = s.MemberID
	}
	return ids
}
