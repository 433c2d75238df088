package app

import (
	"context"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/usecase"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// RestaurantFacade exposes menu, order and statistics use cases to transports.
type RestaurantFacade struct {
	menu   *usecase.MenuUseCase
	orders *usecase.OrderUseCase
	stats  *usecase.StatsUseCase
	health HealthChecker
}

func NewRestaurantFacade(menu *usecase.MenuUseCase, orders *usecase.OrderUseCase, stats *usecase.StatsUseCase, health HealthChecker) *RestaurantFacade {
	return &RestaurantFacade{menu: menu, orders: orders, stats: stats, health: health}
}

func (f *RestaurantFacade) MenuItems(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, model.PageInfo, error) {
	return f.menu.List(ctx, filter, page)
}

func (f *RestaurantFacade) SearchMenu(ctx context.Context, query string, page model.Page) ([]model.MenuItem, model.PageInfo, error) {
	return f.menu.Search(ctx, query, page)
}

func (f *RestaurantFacade) MenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	return f.menu.Get(ctx, id)
}

func (f *RestaurantFacade) CreateMenuItem(ctx context.Context, in usecase.MenuItemInput) (*model.MenuItem, error) {
	return f.menu.Create(ctx, in)
}

func (f *RestaurantFacade) UpdateMenuItem(ctx context.Context, id string, patch usecase.MenuItemPatch) (*model.MenuItem, error) {
	return f.menu.Update(ctx, id, patch)
}

func (f *RestaurantFacade) DeleteMenuItem(ctx context.Context, id string) error {
	return f.menu.Delete(ctx, id)
}

func (f *RestaurantFacade) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	return f.menu.ToggleAvailability(ctx, id)
}

func (f *RestaurantFacade) Orders(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.OrderDetails, model.PageInfo, error) {
	return f.orders.List(ctx, filter, page)
}

func (f *RestaurantFacade) SearchOrders(ctx context.Context, query string, page model.Page) ([]model.OrderDetails, model.PageInfo, error) {
	return f.orders.Search(ctx, query, page)
}

func (f *RestaurantFacade) Order(ctx context.Context, id string) (*model.OrderDetails, error) {
	return f.orders.Get(ctx, id)
}

func (f *RestaurantFacade) PlaceOrder(ctx context.Context, in usecase.OrderInput) (*model.OrderDetails, error) {
	return f.orders.Create(ctx, in)
}

func (f *RestaurantFacade) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.OrderDetails, error) {
	return f.orders.UpdateStatus(ctx, id, status)
}

func (f *RestaurantFacade) OrderStats(ctx context.Context) (*model.OrderStats, error) {
	return f.stats.Summary(ctx)
}

func (f *RestaurantFacade) TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error) {
	return f.stats.TopSellers(ctx, limit)
}

func (f *RestaurantFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
