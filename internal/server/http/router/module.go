package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/bistro/internal/app"
	"github.com/polkiloo/bistro/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(f *app.RestaurantFacade) handlers.RestaurantFacade { return f }),
	fx.Provide(Setup),
)
