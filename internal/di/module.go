package di

import (
	"github.com/polkiloo/bistro/internal/app"
	"github.com/polkiloo/bistro/internal/config"
	"github.com/polkiloo/bistro/internal/logger"
	"github.com/polkiloo/bistro/internal/server/http/router"
	"github.com/polkiloo/bistro/internal/storage"
	"github.com/polkiloo/bistro/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		storage.Module,
		usecase.Module,
		fx.Provide(func(b storage.Backend) app.HealthChecker { return b }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
