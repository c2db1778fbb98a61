// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tripkitty/tripkitty/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
// Implementations wrap it so callers can match with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// such as registering an email twice. Implementations wrap it so callers can
// match with errors.Is.
var ErrDuplicate = errors.New("already exists")

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateTrip persists a new trip with its initial members.
	// ID and CreatedAt are populated by the store when unset.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip with its full member list, members in
	// insertion order.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTripsByMember retrieves all trips the given user is a member of.
	ListTripsByMember(ctx context.Context, userID string) ([]models.Trip, error)

	// AddTripMember appends a member to the trip's membership.
	AddTripMember(ctx context.Context, tripID string, member models.Member) error

	// RemoveTripMember removes a member from the trip.
	RemoveTripMember(ctx context.Context, tripID, memberID string) error

	// SetCentralKeeper assigns the trip's central money keeper.
	// An empty keeperID clears the assignment.
	SetCentralKeeper(ctx context.Context, tripID, keeperID string) error

	// CreateExpense persists an expense with its resolved shares.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its shares.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses retrieves all expenses of a trip, newest first.
	ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error)

	// DeleteExpense removes an expense and its shares.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreatePayment persists a direct payment between two members.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// GetPayment retrieves a payment by ID.
	GetPayment(ctx context.Context, paymentID string) (*models.Payment, error)

	// ListPayments retrieves all direct payments of a trip, newest first.
	ListPayments(ctx context.Context, tripID string) ([]models.Payment, error)

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, paymentID string) error

	// CreateAdhocPayment persists an ad-hoc contribution to the keeper.
	CreateAdhocPayment(ctx context.Context, payment *models.AdhocPayment) error

	// ListAdhocPayments retrieves all ad-hoc payments of a trip, newest first.
	ListAdhocPayments(ctx context.Context, tripID string) ([]models.AdhocPayment, error)

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
