package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tripkitty/tripkitty/internal/middleware"
	"github.com/tripkitty/tripkitty/internal/service"
)

// TripHandler wires trip, membership, and keeper endpoints.
type TripHandler struct {
	logger   *slog.Logger
	trips    *service.TripService
	auth     *service.AuthService
	validate *validator.Validate
}

// NewTripHandler constructs a TripHandler.
func NewTripHandler(logger *slog.Logger, trips *service.TripService, auth *service.AuthService) *TripHandler {
	return &TripHandler{logger: logger, trips: trips, auth: auth, validate: validator.New()}
}

// MountRoutes registers trip routes; all require authentication.
func (h *TripHandler) MountRoutes(r chi.Router) {
	r.Post("/", h.createTrip)
	r.Get("/", h.listTrips)
	r.Get("/{tripID}", h.getTrip)

	r.Post("/{tripID}/members", h.addMember)
	r.Delete("/{tripID}/members/{memberID}", h.removeMember)

	r.Put("/{tripID}/keeper", h.setKeeper)
	r.Delete("/{tripID}/keeper", h.clearKeeper)
}

type createTripRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description"`
	Currency        string `json:"currency" validate:"omitempty,len=3"`
	CreatorIsKeeper bool   `json:"creator_is_keeper"`
}

func (h *TripHandler) createTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	creator, err := h.auth.CurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}

	trip, err := h.trips.CreateTrip(r.Context(), creator, service.CreateTripInput{
		Name:            req.Name,
		Description:     req.Description,
		Currency:        req.Currency,
		CreatorIsKeeper: req.CreatorIsKeeper,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripDTO(trip))
}

func (h *TripHandler) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.ListTrips(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	out := make([]tripDTO, 0, len(trips))
	for i := range trips {
		out = append(out, toTripDTO(&trips[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TripHandler) getTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.GetTrip(r.Context(), chi.URLParam(r, "tripID"), middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripDTO(trip))
}

type addMemberRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (h *TripHandler) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	member, err := h.trips.AddMember(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()), req.Name, req.Email)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberDTO(*member))
}

func (h *TripHandler) removeMember(w http.ResponseWriter, r *http.Request) {
	err := h.trips.RemoveMember(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()), chi.URLParam(r, "memberID"))
	if err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setKeeperRequest struct {
	KeeperID string `json:"keeper_id" validate:"required"`
}

func (h *TripHandler) setKeeper(w http.ResponseWriter, r *http.Request) {
	var req setKeeperRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	err := h.trips.SetKeeper(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()), req.KeeperID)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TripHandler) clearKeeper(w http.ResponseWriter, r *http.Request) {
	err := h.trips.SetKeeper(r.Context(), chi.URLParam(r, "tripID"),
		middleware.GetUserID(r.Context()), "")
	if err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
