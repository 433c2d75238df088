package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/bistro/internal/config"
	"github.com/polkiloo/bistro/internal/domain/repository"
)

// Module wires the configured storage backend and repository adapters.
var Module = fx.Options(
	fx.Provide(newBackend),
	fx.Provide(
		func(b Backend) repository.MenuRepository { return b.Menu() },
		func(b Backend) repository.OrderRepository { return b.Orders() },
	),
	fx.Invoke(registerLifecycle),
)

type backendParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newBackend(p backendParams) (Backend, error) {
	return Open(p.Ctx, p.Config, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, backend Backend) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			backend.Close()
			return nil
		},
	})
}
