package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tripkitty/tripkitty/internal/middleware"
	"github.com/tripkitty/tripkitty/internal/models"
	"github.com/tripkitty/tripkitty/internal/service"
)

// ExpenseHandler wires expense endpoints.
type ExpenseHandler struct {
	logger   *slog.Logger
	expenses *service.ExpenseService
	validate *validator.Validate
}

// NewExpenseHandler constructs an ExpenseHandler.
func NewExpenseHandler(logger *slog.Logger, expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{logger: logger, expenses: expenses, validate: validator.New()}
}

// MountRoutes registers expense routes under a trip; all require
// authentication.
func (h *ExpenseHandler) MountRoutes(r chi.Router) {
	r.Post("/{tripID}/expenses", h.addExpense)
	r.Get("/{tripID}/expenses", h.listExpenses)
	r.Delete("/{tripID}/expenses/{expenseID}", h.deleteExpense)
}

type addExpenseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaidByID    string  `json:"paid_by_id" validate:"required"`
	SplitType   string  `json:"split_type" validate:"required"`

	Participants []string           `json:"participants" validate:"required,min=1"`
	ExactAmounts map[string]float64 `json:"exact_amounts,omitempty"`
	Percentages  map[string]float64 `json:"percentages,omitempty"`
}

func (h *ExpenseHandler) addExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	expense, err := h.expenses.AddExpense(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()), service.AddExpenseInput{
			Title:        req.Title,
			Description:  req.Description,
			Category:     req.Category,
			Amount:       req.Amount,
			PaidByID:     req.PaidByID,
			SplitType:    models.SplitType(req.SplitType),
			Participants: req.Participants,
			ExactAmounts: req.ExactAmounts,
			Percentages:  req.Percentages,
		})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(expense))
}

func (h *ExpenseHandler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.ListExpenses(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]expenseDTO, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseDTO(&expenses[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ExpenseHandler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	err := h.expenses.DeleteExpense(r.Context(), chi.URLParam(r, "tripID"),
		chi.URLParam(r, "expenseID"), middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
