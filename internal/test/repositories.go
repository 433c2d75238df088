package test

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

// MenuRepositoryStub serves menu items from a map unless a function override is set.
type MenuRepositoryStub struct {
	Items map[string]model.MenuItem
	Err   error

	ListFn    func(context.Context, model.MenuFilter, model.Page) ([]model.MenuItem, int, error)
	SearchFn  func(context.Context, string, model.Page) ([]model.MenuItem, int, error)
	GetManyFn func(context.Context, []string) (map[string]model.MenuItem, error)
	CreateFn  func(context.Context, model.MenuItem) (*model.MenuItem, error)
	UpdateFn  func(context.Context, model.MenuItem) (*model.MenuItem, error)
	DeleteFn  func(context.Context, string) error
	ToggleFn  func(context.Context, string) (*model.MenuItem, error)

	GetManyCalls [][]string
}

// NewMenuRepositoryStub constructs stub repository seeded with items.
func NewMenuRepositoryStub(items ...model.MenuItem) *MenuRepositoryStub {
	s := &MenuRepositoryStub{Items: make(map[string]model.MenuItem, len(items))}
	for _, item := range items {
		s.Items[item.ID] = item
	}
	return s
}

// List returns every stored item unless overridden.
func (s *MenuRepositoryStub) List(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter, page)
	}
	if s.Err != nil {
		return nil, 0, s.Err
	}
	out := make([]model.MenuItem, 0, len(s.Items))
	for _, item := range s.Items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, len(out), nil
}

// Search delegates to override or returns no matches.
func (s *MenuRepositoryStub) Search(ctx context.Context, query string, page model.Page) ([]model.MenuItem, int, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, query, page)
	}
	return []model.MenuItem{}, 0, s.Err
}

// GetByID fetches item by identifier or returns not found.
func (s *MenuRepositoryStub) GetByID(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	item, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &item, nil
}

// GetMany records requested identifiers and returns the stored subset.
func (s *MenuRepositoryStub) GetMany(ctx context.Context, ids []string) (map[string]model.MenuItem, error) {
	s.GetManyCalls = append(s.GetManyCalls, ids)
	if s.GetManyFn != nil {
		return s.GetManyFn(ctx, ids)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]model.MenuItem, len(ids))
	for _, id := range ids {
		if item, ok := s.Items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

// Create stores item unless overridden.
func (s *MenuRepositoryStub) Create(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, item)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Items == nil {
		s.Items = make(map[string]model.MenuItem)
	}
	s.Items[item.ID] = item
	return &item, nil
}

// Update replaces stored item unless overridden.
func (s *MenuRepositoryStub) Update(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, item)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.Items[item.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Items[item.ID] = item
	return &item, nil
}

// Delete drops stored item unless overridden.
func (s *MenuRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Items[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Items, id)
	return nil
}

// ToggleAvailability flips stored availability unless overridden.
func (s *MenuRepositoryStub) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.ToggleFn != nil {
		return s.ToggleFn(ctx, id)
	}
	item, ok := s.Items[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	item.IsAvailable = !item.IsAvailable
	s.Items[id] = item
	return &item, nil
}

// OrderUpdateCall captures a status compare-and-set request.
type OrderUpdateCall struct {
	ID   string
	From model.OrderStatus
	To   model.OrderStatus
	At   time.Time
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, string) (*model.Order, error)
	ListFn         func(context.Context, model.OrderFilter, model.Page) ([]model.Order, int, error)
	AllFn          func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, string, model.OrderStatus, model.OrderStatus, time.Time) (*model.Order, error)

	Created     []model.Order
	Orders      []model.Order
	UpdateCalls []OrderUpdateCall
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	s.Created = append(s.Created, order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	order.Number = model.FormatOrderNumber(model.OrderDay(order.CreatedAt), len(s.Created))
	return &order, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns orders from configured slice.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter, page)
	}
	return s.Orders, len(s.Orders), nil
}

// All returns orders from configured slice.
func (s *OrderRepositoryStub) All(ctx context.Context) ([]model.Order, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx)
	}
	return s.Orders, nil
}

// UpdateStatus records the call and applies it to the stored slice.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, at time.Time) (*model.Order, error) {
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{ID: id, From: from, To: to, At: at})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, from, to, at)
	}
	for i, o := range s.Orders {
		if o.ID != id {
			continue
		}
		if o.Status != from {
			return nil, domainErrors.ErrStatusConflict
		}
		s.Orders[i].Status = to
		s.Orders[i].UpdatedAt = at
		order := s.Orders[i]
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}
