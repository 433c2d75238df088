package repository

import (
	"context"

	"github.com/polkiloo/bistro/internal/domain/model"
)

// MenuRepository describes persistence operations for menu items.
type MenuRepository interface {
	List(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, int, error)
	Search(ctx context.Context, query string, page model.Page) ([]model.MenuItem, int, error)
	GetByID(ctx context.Context, id string) (*model.MenuItem, error)
	GetMany(ctx context.Context, ids []string) (map[string]model.MenuItem, error)
	Create(ctx context.Context, item model.MenuItem) (*model.MenuItem, error)
	Update(ctx context.Context, item model.MenuItem) (*model.MenuItem, error)
	Delete(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error)
}
