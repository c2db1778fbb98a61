package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/tripkitty/tripkitty/internal/auth"
	"github.com/tripkitty/tripkitty/internal/config"
	"github.com/tripkitty/tripkitty/internal/middleware"
	"github.com/tripkitty/tripkitty/internal/observability"
	"github.com/tripkitty/tripkitty/internal/storage"
)

// RouterParams carries everything the router needs.
type RouterParams struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      storage.Store
	JWTManager *auth.JWTManager
	Metrics    *observability.Metrics

	AuthHandler    *AuthHandler
	TripHandler    *TripHandler
	ExpenseHandler *ExpenseHandler
	PaymentHandler *PaymentHandler
	BalanceHandler *BalanceHandler
}

// NewRouter constructs the chi.Router with the full middleware chain and all
// API routes mounted under /api/v1.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      !params.Config.IsProduction(),
	})

	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secureMiddleware.Process(w, r); err != nil {
				params.Logger.Warn("secure headers blocked request", "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)

	rateLimit := params.Config.RateLimit
	if rateLimit <= 0 {
		rateLimit = 120
	}
	window := params.Config.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	r.Use(httprate.Limit(rateLimit, window, httprate.WithKeyFuncs(httprate.KeyByIP)))

	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := params.Store.Ping(r.Context()); err != nil {
			params.Logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			params.AuthHandler.MountRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(params.JWTManager))
				params.AuthHandler.MountProtectedRoutes(r)
			})
		})

		r.Route("/trips", func(r chi.Router) {
			r.Use(middleware.RequireAuth(params.JWTManager))
			params.TripHandler.MountRoutes(r)
			params.ExpenseHandler.MountRoutes(r)
			params.PaymentHandler.MountRoutes(r)
			params.BalanceHandler.MountRoutes(r)
		})
	})

	return r
}
