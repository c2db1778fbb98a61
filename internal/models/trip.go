package models

// Role is a member's role within a trip.
type Role string

const (
	// RoleAdmin can manage members, the central keeper, and delete any expense.
	RoleAdmin Role = "ADMIN"
	// RoleMember is a regular participant.
	RoleMember Role = "MEMBER"
)

// Member represents one user's membership in a trip.
type Member struct {
	// ID is the member's user ID (UUID format), unique within the trip.
	ID string

	// Name is the display name shown in balances and lists.
	Name string

	// Email is the member's email address.
	Email string

	// Role is ADMIN or MEMBER. It only gates management operations;
	// balance computation never looks at it.
	Role Role
}

// Trip represents a bounded group of members sharing expenses.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Goa 2026").
	Name string

	// Description is an optional free-form note.
	Description string

	// Currency is an opaque label (e.g., "USD", "INR"); amounts are never
	// converted between currencies.
	Currency string

	// CentralKeeperID is the member who fronts shared payments on behalf
	// of the group. Empty when no keeper is assigned.
	CentralKeeperID string

	// Members is the membership list in insertion order. Order is not
	// significant to balances but keeps pairwise tie-breaking stable.
	Members []Member

	// CreatedBy is the user ID of the trip creator (its first admin).
	CreatedBy string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// MemberByID returns the member with the given ID, or nil.
func (t *Trip) MemberByID(id string) *Member {
	for i := range t.Members {
		if t.Members[i].ID == id {
			return &t.Members[i]
		}
	}
	return nil
}

// IsAdmin reports whether the given user is an ADMIN member of the trip.
func (t *Trip) IsAdmin(userID string) bool {
	m := t.MemberByID(userID)
	return m != nil && m.Role == RoleAdmin
}
