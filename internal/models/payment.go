package models

// Payment represents a direct settlement between two members of a trip.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// TripID is the trip this payment belongs to.
	TripID string

	// PayerID is the member who paid (debtor settling up).
	PayerID string

	// ReceiverID is the member who received the payment.
	ReceiverID string

	// Amount is the payment amount, always positive.
	Amount float64

	// Description is an optional note for the payment.
	Description string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}

// AdhocPayment is a contribution to the trip's central money keeper: a member
// pre-funds the keeper, who then pays shared expenses on everyone's behalf.
// It has the same shape as Payment but ReceiverID is always the keeper.
type AdhocPayment struct {
	ID          string
	TripID      string
	PayerID     string
	ReceiverID  string
	Amount      float64
	Description string
	CreatedAt   int64
}
