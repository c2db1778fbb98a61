package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tripkitty/tripkitty/internal/api"
	"github.com/tripkitty/tripkitty/internal/auth"
	"github.com/tripkitty/tripkitty/internal/config"
	"github.com/tripkitty/tripkitty/internal/observability"
	"github.com/tripkitty/tripkitty/internal/service"
	"github.com/tripkitty/tripkitty/internal/storage/sqlite"
	"github.com/tripkitty/tripkitty/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)
	logger := slog.Default()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := service.NewAuthService(authenticator, jwtManager, store, logger)
	tripSvc := service.NewTripService(store)
	expenseSvc := service.NewExpenseService(store)
	paymentSvc := service.NewPaymentService(store)
	balanceSvc := service.NewBalanceService(store)

	router := api.NewRouter(api.RouterParams{
		Logger:     logger,
		Config:     cfg,
		Store:      store,
		JWTManager: jwtManager,
		Metrics:    observability.NewMetrics(),

		AuthHandler:    api.NewAuthHandler(logger, authSvc),
		TripHandler:    api.NewTripHandler(logger, tripSvc, authSvc),
		ExpenseHandler: api.NewExpenseHandler(logger, expenseSvc),
		PaymentHandler: api.NewPaymentHandler(logger, paymentSvc),
		BalanceHandler: api.NewBalanceHandler(logger, balanceSvc),
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "address", cfg.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
