package postgres

import (
	"context"
	"credit-ledger/internal/config"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns = 10
	applicationName = "credit-ledger"
	connectAttempts = 3
	pingTimeout     = 5 * time.Second
)

// retryDelay is the pause between ping attempts while the database comes up.
var retryDelay = 2 * time.Second

func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL is empty in configuration")
	}

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}
	logger = logger.With("component", "PostgresPool",
		"host", poolConfig.ConnConfig.Host,
		"db", poolConfig.ConnConfig.Database)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := waitForDatabase(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Connected to PostgreSQL record store", "max_conns", poolConfig.MaxConns)
	return pool, nil
}

func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = defaultMaxConns
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	return poolConfig, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// waitForDatabase pings until the database answers, giving up after
// connectAttempts tries or when ctx ends.
func waitForDatabase(ctx context.Context, db pinger, logger *slog.Logger) error {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		logger.Warn("Database ping failed", "attempt", attempt, "error", err)

		if attempt < connectAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("gave up waiting for database: %w", ctx.Err())
			case <-time.After(retryDelay):
			}
		}
	}
	return fmt.Errorf("failed to ping database after %d attempts: %w", connectAttempts, err)
}
