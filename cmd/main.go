package main

import (
	"context"
	_ "credit-ledger/docs"
	"credit-ledger/internal/api"
	mw "credit-ledger/internal/api/middleware"
	"credit-ledger/internal/batch"
	"credit-ledger/internal/config"
	"credit-ledger/internal/domain/dashboard"
	"credit-ledger/internal/domain/ledger"
	"credit-ledger/internal/domain/report"
	"credit-ledger/internal/event"
	"credit-ledger/internal/infrastructure/database/memory"
	"credit-ledger/internal/infrastructure/database/postgres"
	"credit-ledger/internal/infrastructure/database/sqlite"
	"credit-ledger/internal/infrastructure/logging"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
)

const (
	defaultSweepSchedule   = "0 3 * * *"
	defaultSweepTimeout    = 5 * time.Minute
	rateLimiterCleanupSpec = "@every 10m"
)

// @title Credit Ledger API
// @version 1.0
// @description Customer credit ledger for a single shop: customers, loans, payments, balances and reports.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	store, closeStore, err := initializeStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize record store", "backend", cfg.Database.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	publisher, closePublisher := initializeEventPublisher(cfg, logger)
	defer closePublisher()

	services := initializeServices(cfg, store, publisher, logger)
	sweepJob := batch.NewOrphanSweepJob(store, logger)

	cronScheduler := startBatchJobs(cfg, logger, sweepJob, services.RateLimiter)
	router := api.SetupRouter(services, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	logger.Info("Application starting...", "backend", cfg.Database.Backend, "shop", cfg.Shop.Name)

	return cfg, logger
}

// initializeStore opens the configured backend. The returned func releases it.
func initializeStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ledger.Store, func(), error) {
	switch cfg.Database.Backend {
	case config.BackendMemory:
		logger.Warn("Using in-memory record store; records are lost on exit")
		return memory.New(), func() {}, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, cfg.Database.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			logger.Info("Closing SQLite record store...")
			if err := store.Close(); err != nil {
				logger.Error("Failed to close SQLite record store", "error", err)
			}
		}, nil

	case config.BackendPostgres:
		logger.Info("Applying database migrations...")
		if err := postgres.RunMigrations(cfg.Database.URL); err != nil {
			return nil, nil, err
		}
		logger.Info("Initializing database connection pool...")
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(dbPool, logger), func() {
			logger.Info("Closing database connection pool...")
			dbPool.Close()
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
}

// initializeEventPublisher connects to RabbitMQ when enabled. A broker that
// cannot be reached leaves the ledger running without events.
func initializeEventPublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, func()) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled; ledger events will not be published")
		return nil, func() {}
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Warn("Failed to connect to RabbitMQ; continuing without events", "error", err)
		return nil, func() {}
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to set up RabbitMQ publisher; continuing without events", "error", err)
		conn.Close()
		return nil, func() {}
	}
	return publisher, func() {
		logger.Info("Closing RabbitMQ connection...")
		if err := conn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection", "error", err)
		}
	}
}

func initializeServices(cfg *config.Config, store ledger.Store, publisher event.EventPublisher, logger *slog.Logger) api.Services {
	logger.Info("Initializing application components...")
	return api.Services{
		Ledger:      ledger.NewLedgerService(store, publisher, logger),
		Reports:     report.NewService(store, logger),
		Summary:     dashboard.NewAggregator(store, logger),
		RateLimiter: mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger),
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.")
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	if triggerReason != "server exited" {
		logger.Info("Waiting for server goroutine to confirm exit...")
		select {
		case err := <-serverErrors:
			if err != nil {
				logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
			} else {
				logger.Info("Server goroutine confirmed exit.")
			}
		case <-time.After(5 * time.Second):
			logger.Warn("Timed out waiting for server goroutine confirmation.")
		}
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, sweepJob *batch.OrphanSweepJob, limiter *mw.RateLimiterMiddleware) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.OrphanSweepSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultSweepSchedule
		logger.Warn("Orphan sweep schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.OrphanSweepTimeout
	if jobTimeout <= 0 {
		jobTimeout = defaultSweepTimeout
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "OrphanSweep")
		jobLogger.Info("Cron triggered: Running orphan sweep job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := sweepJob.Run(ctx); runErr != nil {
			jobLogger.Error("Orphan sweep job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Orphan sweep job finished successfully.")
		}
	}))
	if err != nil {
		logger.Error("Failed to schedule orphan sweep job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled orphan sweep job", "schedule", scheduleSpec, "job_id", jobID)
	}

	if limiter != nil {
		if _, err := c.AddFunc(rateLimiterCleanupSpec, func() {
			if removed := limiter.Cleanup(); removed > 0 {
				logger.Debug("Dropped idle rate limiters", "count", removed)
			}
		}); err != nil {
			logger.Error("Failed to schedule rate limiter cleanup", slog.Any("error", err))
		}
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
