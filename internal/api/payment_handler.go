package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tripkitty/tripkitty/internal/middleware"
	"github.com/tripkitty/tripkitty/internal/service"
)

// PaymentHandler wires settlement and ad-hoc payment endpoints.
type PaymentHandler struct {
	logger   *slog.Logger
	payments *service.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(logger *slog.Logger, payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{logger: logger, payments: payments, validate: validator.New()}
}

// MountRoutes registers payment routes under a trip; all require
// authentication.
func (h *PaymentHandler) MountRoutes(r chi.Router) {
	r.Post("/{tripID}/payments", h.recordPayment)
	r.Get("/{tripID}/payments", h.listPayments)
	r.Delete("/{tripID}/payments/{paymentID}", h.deletePayment)

	r.Post("/{tripID}/adhoc-payments", h.recordAdhocPayment)
	r.Get("/{tripID}/adhoc-payments", h.listAdhocPayments)
}

type recordPaymentRequest struct {
	ReceiverID  string  `json:"receiver_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

func (h *PaymentHandler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	payment, err := h.payments.RecordPayment(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()), req.ReceiverID, req.Amount, req.Description)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

func (h *PaymentHandler) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListPayments(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]paymentDTO, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentDTO(&payments[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PaymentHandler) deletePayment(w http.ResponseWriter, r *http.Request) {
	err := h.payments.DeletePayment(r.Context(), chi.URLParam(r, "tripID"),
		chi.URLParam(r, "paymentID"), middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type recordAdhocPaymentRequest struct {
	PayerID     string  `json:"payer_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

func (h *PaymentHandler) recordAdhocPayment(w http.ResponseWriter, r *http.Request) {
	var req recordAdhocPaymentRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	payment, err := h.payments.RecordAdhocPayment(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()), req.PayerID, req.Amount, req.Description)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAdhocPaymentDTO(payment))
}

func (h *PaymentHandler) listAdhocPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListAdhocPayments(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]paymentDTO, 0, len(payments))
	for i := range payments {
		out = append(out, toAdhocPaymentDTO(&payments[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
