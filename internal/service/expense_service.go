package service

import (
	"context"
	"log/slog"

	"github.com/tripkitty/tripkitty/internal/calculator"
	"github.com/tripkitty/tripkitty/internal/models"
	"github.com/tripkitty/tripkitty/internal/storage"
)

// ExpenseService validates and records shared expenses.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpenseInput carries the raw split input before shares are resolved.
type AddExpenseInput struct {
	Title       string
	Description string
	Category    string
	Amount      float64
	PaidByID    string
	SplitType   models.SplitType

	// Participants are the member IDs sharing the expense.
	Participants []string

	// ExactAmounts is the per-member amount for EXACT_AMOUNTS splits.
	ExactAmounts map[string]float64

	// Percentages is the per-member percentage for PERCENTAGES splits.
	Percentages map[string]float64
}

var validCategories = map[string]bool{
	models.CategoryFood:          true,
	models.CategoryTransport:     true,
	models.CategoryAccommodation: true,
	models.CategoryEntertainment: true,
	models.CategoryShopping:      true,
	models.CategoryGeneral:       true,
}

// AddExpense validates the input, resolves the participant shares from the
// split type, and persists the expense. All rejections happen here; the
// balance engine only ever sees resolved, tolerance-checked shares.
func (s *ExpenseService) AddExpense(ctx context.Context, tripID, actorID string, in AddExpenseInput) (*models.Expense, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(actorID) == nil {
		return nil, ErrPermissionDenied
	}

	if in.Title == "" {
		return nil, invalidf("expense title is required")
	}
	if in.Amount <= 0 {
		return nil, invalidf("amount must be positive")
	}
	if !in.SplitType.Valid() {
		return nil, invalidf("unknown split type %q", in.SplitType)
	}
	if in.Category == "" {
		in.Category = models.CategoryGeneral
	}
	if !validCategories[in.Category] {
		return nil, invalidf("unknown category %q", in.Category)
	}

	if trip.MemberByID(in.PaidByID) == nil {
		return nil, invalidf("payer must be a trip member")
	}
	if len(in.Participants) == 0 {
		return nil, invalidf("at least one participant is required")
	}
	for _, id := range in.Participants {
		if trip.MemberByID(id) == nil {
			return nil, invalidf("participant %s is not a trip member", id)
		}
	}

	shares, err := calculator.ResolveSplit(in.Amount, in.SplitType, in.Participants, in.ExactAmounts, in.Percentages)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	expense := &models.Expense{
		TripID:      tripID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		PaidByID:    in.PaidByID,
		SplitType:   in.SplitType,
		Shares:      shares,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("expense added", "trip_id", tripID, "expense_id", expense.ID,
		"amount", expense.Amount, "split_type", expense.SplitType)
	return expense, nil
}

// ListExpenses retrieves all expenses of a trip; the actor must be a member.
func (s *ExpenseService) ListExpenses(ctx context.Context, tripID, actorID string) ([]models.Expense, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.MemberByID(actorID) == nil {
		return nil, ErrPermissionDenied
	}
	return s.store.ListExpenses(ctx, tripID)
}

// DeleteExpense removes an expense. Permitted to the expense's payer or to
// an ADMIN member of the trip.
func (s *ExpenseService) DeleteExpense(ctx context.Context, tripID, expenseID, actorID string) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.MemberByID(actorID) == nil {
		return ErrPermissionDenied
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.TripID != tripID {
		return storage.ErrNotFound
	}
	if expense.PaidByID != actorID && !trip.IsAdmin(actorID) {
		return ErrPermissionDenied
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}
	slog.Info("expense deleted", "trip_id", tripID, "expense_id", expenseID, "by", actorID)
	return nil
}
