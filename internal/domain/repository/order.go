package repository

import (
	"context"
	"time"

	"github.com/polkiloo/bistro/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create assigns the next order number for the day of order.CreatedAt and
	// persists the order with its lines atomically.
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter, page model.Page) ([]model.Order, int, error)
	All(ctx context.Context) ([]model.Order, error)
	// UpdateStatus moves the order from one status to another only when its
	// stored status still equals from. It returns ErrStatusConflict otherwise.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, at time.Time) (*model.Order, error)
}
