package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tripkitty/tripkitty/internal/middleware"
	"github.com/tripkitty/tripkitty/internal/service"
)

// AuthHandler wires account registration and login endpoints.
type AuthHandler struct {
	logger   *slog.Logger
	service  *service.AuthService
	validate *validator.Validate
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(logger *slog.Logger, svc *service.AuthService) *AuthHandler {
	return &AuthHandler{logger: logger, service: svc, validate: validator.New()}
}

// MountRoutes registers the public auth routes.
func (h *AuthHandler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

// MountProtectedRoutes registers the routes that require a valid token.
func (h *AuthHandler) MountProtectedRoutes(r chi.Router) {
	r.Get("/me", h.me)
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  userDTO `json:"user"`
	Token string  `json:"token"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	user, token, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserDTO(user), Token: token})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, h.validate, &req) {
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserDTO(user), Token: token})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}
