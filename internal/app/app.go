package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/medcatalog/internal/adapter/postgres"
	"github.com/heartmarshall/medcatalog/internal/config"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// Env is the shared bootstrap state of a catalog command.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

// Setup loads configuration, initializes the logger, and logs startup
// information for the named tool. Configuration problems wrap
// domain.ErrFatalConfig.
func Setup(tool string) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFatalConfig, err)
	}

	logger := NewLogger(cfg.Log).With(slog.String("tool", tool))

	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return &Env{Config: cfg, Logger: logger}, nil
}

// OpenDatabase validates the database settings and returns a ready pool.
func (e *Env) OpenDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	if err := e.Config.Database.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFatalConfig, err)
	}
	pool, err := postgres.NewPool(ctx, e.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFatalConfig, err)
	}
	return pool, nil
}
