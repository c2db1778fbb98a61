package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripkitty/tripkitty/internal/middleware"
	"github.com/tripkitty/tripkitty/internal/service"
)

// BalanceHandler exposes the balance engine's output.
type BalanceHandler struct {
	logger   *slog.Logger
	balances *service.BalanceService
}

// NewBalanceHandler constructs a BalanceHandler.
func NewBalanceHandler(logger *slog.Logger, balances *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{logger: logger, balances: balances}
}

// MountRoutes registers balance routes under a trip; all require
// authentication.
func (h *BalanceHandler) MountRoutes(r chi.Router) {
	r.Get("/{tripID}/balances", h.summary)
	r.Get("/{tripID}/keeper", h.keeperSummary)
}

func (h *BalanceHandler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.balances.Summary(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceSummaryDTO(summary))
}

func (h *BalanceHandler) keeperSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.balances.Keeper(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toKeeperSummaryDTO(summary))
}
