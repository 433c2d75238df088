package handlers

import (
	"context"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/usecase"
)

// MenuFacade describes menu catalog operations exposed via HTTP.
type MenuFacade interface {
	MenuItems(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, model.PageInfo, error)
	SearchMenu(ctx context.Context, query string, page model.Page) ([]model.MenuItem, model.PageInfo, error)
	MenuItem(ctx context.Context, id string) (*model.MenuItem, error)
	CreateMenuItem(ctx context.Context, in usecase.MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, patch usecase.MenuItemPatch) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	Orders(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.OrderDetails, model.PageInfo, error)
	SearchOrders(ctx context.Context, query string, page model.Page) ([]model.OrderDetails, model.PageInfo, error)
	Order(ctx context.Context, id string) (*model.OrderDetails, error)
	PlaceOrder(ctx context.Context, in usecase.OrderInput) (*model.OrderDetails, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.OrderDetails, error)
}

// StatsFacade provides read-only order statistics.
type StatsFacade interface {
	OrderStats(ctx context.Context) (*model.OrderStats, error)
	TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error)
}

// HealthFacade reports backend health.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// RestaurantFacade aggregates the full set of operations used across handlers.
type RestaurantFacade interface {
	MenuFacade
	OrderFacade
	StatsFacade
	HealthFacade
}
