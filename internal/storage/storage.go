package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/polkiloo/bistro/internal/config"
	"github.com/polkiloo/bistro/internal/domain/repository"
	"github.com/polkiloo/bistro/internal/storage/memory"
	"github.com/polkiloo/bistro/internal/storage/mongo"
	"github.com/polkiloo/bistro/internal/storage/postgres"
)

// Backend is a persistence implementation with its own lifecycle.
type Backend interface {
	repository.Factory
	HealthCheck(ctx context.Context) error
	Close()
}

// Resetter is implemented by backends that can drop every record.
type Resetter interface {
	Reset()
}

type opener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error)

var openers = map[string]opener{
	"postgres":    openPostgres,
	"postgresql":  openPostgres,
	"mongodb":     openMongo,
	"mongodb+srv": openMongo,
	"memory":      openMemory,
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	return postgres.New(ctx, cfg.DatabaseURI, logger)
}

func openMongo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	return mongo.New(ctx, cfg.DatabaseURI, cfg.MongoDatabase, logger)
}

func openMemory(_ context.Context, _ *config.Config, logger *slog.Logger) (Backend, error) {
	logger.Warn("using in-memory storage, data is lost on restart")
	return memory.New(), nil
}

// Open selects the backend by the scheme of cfg.DatabaseURI.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	u, err := url.Parse(cfg.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("parse database uri: %w", err)
	}
	open, ok := openers[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
	return open(ctx, cfg, logger)
}
