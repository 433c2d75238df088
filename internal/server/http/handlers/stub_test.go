package handlers

import (
	"context"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/usecase"
)

// facadeStub provides controllable behaviour for every HTTP facade method.
// Unset functions fall back to empty successful results.
type facadeStub struct {
	MenuItemsFn          func(context.Context, model.MenuFilter, model.Page) ([]model.MenuItem, model.PageInfo, error)
	SearchMenuFn         func(context.Context, string, model.Page) ([]model.MenuItem, model.PageInfo, error)
	MenuItemFn           func(context.Context, string) (*model.MenuItem, error)
	CreateMenuItemFn     func(context.Context, usecase.MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItemFn     func(context.Context, string, usecase.MenuItemPatch) (*model.MenuItem, error)
	DeleteMenuItemFn     func(context.Context, string) error
	ToggleAvailabilityFn func(context.Context, string) (*model.MenuItem, error)

	OrdersFn            func(context.Context, model.OrderFilter, model.Page) ([]model.OrderDetails, model.PageInfo, error)
	SearchOrdersFn      func(context.Context, string, model.Page) ([]model.OrderDetails, model.PageInfo, error)
	OrderFn             func(context.Context, string) (*model.OrderDetails, error)
	PlaceOrderFn        func(context.Context, usecase.OrderInput) (*model.OrderDetails, error)
	UpdateOrderStatusFn func(context.Context, string, model.OrderStatus) (*model.OrderDetails, error)

	OrderStatsFn func(context.Context) (*model.OrderStats, error)
	TopSellersFn func(context.Context, int) ([]model.TopSeller, error)

	HealthFn func(context.Context) error
}

// MenuItems returns a filtered menu page.
func (s facadeStub) MenuItems(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, model.PageInfo, error) {
	if s.MenuItemsFn != nil {
		return s.MenuItemsFn(ctx, filter, page)
	}
	return []model.MenuItem{}, model.PageInfo{Page: 1, Limit: 20}, nil
}

// SearchMenu returns menu search results.
func (s facadeStub) SearchMenu(ctx context.Context, query string, page model.Page) ([]model.MenuItem, model.PageInfo, error) {
	if s.SearchMenuFn != nil {
		return s.SearchMenuFn(ctx, query, page)
	}
	return []model.MenuItem{}, model.PageInfo{Page: 1, Limit: 20}, nil
}

// MenuItem returns a single item.
func (s facadeStub) MenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.MenuItemFn != nil {
		return s.MenuItemFn(ctx, id)
	}
	return &model.MenuItem{ID: id}, nil
}

// CreateMenuItem echoes the input back as a stored item.
func (s facadeStub) CreateMenuItem(ctx context.Context, in usecase.MenuItemInput) (*model.MenuItem, error) {
	if s.CreateMenuItemFn != nil {
		return s.CreateMenuItemFn(ctx, in)
	}
	item := &model.MenuItem{ID: "created", Name: in.Name, Category: in.Category, Ingredients: in.Ingredients, IsAvailable: true}
	if in.Price != nil {
		item.Price = *in.Price
	}
	return item, nil
}

// UpdateMenuItem delegates to UpdateMenuItemFn.
func (s facadeStub) UpdateMenuItem(ctx context.Context, id string, patch usecase.MenuItemPatch) (*model.MenuItem, error) {
	if s.UpdateMenuItemFn != nil {
		return s.UpdateMenuItemFn(ctx, id, patch)
	}
	return &model.MenuItem{ID: id}, nil
}

// DeleteMenuItem delegates to DeleteMenuItemFn.
func (s facadeStub) DeleteMenuItem(ctx context.Context, id string) error {
	if s.DeleteMenuItemFn != nil {
		return s.DeleteMenuItemFn(ctx, id)
	}
	return nil
}

// ToggleAvailability delegates to ToggleAvailabilityFn.
func (s facadeStub) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.ToggleAvailabilityFn != nil {
		return s.ToggleAvailabilityFn(ctx, id)
	}
	return &model.MenuItem{ID: id, IsAvailable: true}, nil
}

// Orders returns an order page.
func (s facadeStub) Orders(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.OrderDetails, model.PageInfo, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, filter, page)
	}
	return []model.OrderDetails{}, model.PageInfo{Page: 1, Limit: 20}, nil
}

// SearchOrders returns order search results.
func (s facadeStub) SearchOrders(ctx context.Context, query string, page model.Page) ([]model.OrderDetails, model.PageInfo, error) {
	if s.SearchOrdersFn != nil {
		return s.SearchOrdersFn(ctx, query, page)
	}
	return []model.OrderDetails{}, model.PageInfo{Page: 1, Limit: 20}, nil
}

// Order returns a single order.
func (s facadeStub) Order(ctx context.Context, id string) (*model.OrderDetails, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.OrderDetails{Order: model.Order{ID: id, Status: model.OrderStatusPending}}, nil
}

// PlaceOrder delegates to PlaceOrderFn.
func (s facadeStub) PlaceOrder(ctx context.Context, in usecase.OrderInput) (*model.OrderDetails, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, in)
	}
	return &model.OrderDetails{Order: model.Order{
		ID:           "placed",
		Status:       model.OrderStatusPending,
		CustomerName: in.CustomerName,
		TableNumber:  in.TableNumber,
	}}, nil
}

// UpdateOrderStatus returns the order in the requested status.
func (s facadeStub) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.OrderDetails, error) {
	if s.UpdateOrderStatusFn != nil {
		return s.UpdateOrderStatusFn(ctx, id, status)
	}
	return &model.OrderDetails{Order: model.Order{ID: id, Status: status}}, nil
}

// OrderStats returns empty statistics.
func (s facadeStub) OrderStats(ctx context.Context) (*model.OrderStats, error) {
	if s.OrderStatsFn != nil {
		return s.OrderStatsFn(ctx)
	}
	return &model.OrderStats{ByStatus: map[model.OrderStatus]model.StatusTotals{}}, nil
}

// TopSellers returns an empty ranking.
func (s facadeStub) TopSellers(ctx context.Context, limit int) ([]model.TopSeller, error) {
	if s.TopSellersFn != nil {
		return s.TopSellersFn(ctx, limit)
	}
	return []model.TopSeller{}, nil
}

// Health reports a healthy backend unless HealthFn says otherwise.
func (s facadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
