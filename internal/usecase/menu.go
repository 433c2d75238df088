package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/domain/repository"
)

// MenuItemInput carries the fields of a new menu item.
type MenuItemInput struct {
	Name            string
	Description     string
	Category        model.Category
	Price           *decimal.Decimal
	Ingredients     []string
	IsAvailable     *bool
	PreparationTime *int
	ImageURL        string
}

// MenuItemPatch lists the fields to change on an existing item. Nil fields are kept.
type MenuItemPatch struct {
	Name            *string
	Description     *string
	Category        *model.Category
	Price           *decimal.Decimal
	Ingredients     *[]string
	IsAvailable     *bool
	PreparationTime *int
	ImageURL        *string
}

type menuItemRules struct {
	Name            string           `json:"name" validate:"required,max=100"`
	Description     string           `json:"description" validate:"max=500"`
	Category        model.Category   `json:"category" validate:"category"`
	Price           *decimal.Decimal `json:"price" validate:"required,gte=0,lte=9999.99,cents"`
	Ingredients     []string         `json:"ingredients" validate:"ingredients,maxeach=50"`
	PreparationTime *int             `json:"preparationTime" validate:"omitempty,min=1,max=180"`
	ImageURL        string           `json:"imageUrl" validate:"omitempty,imageurl"`
}

func (in *MenuItemInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
}

func (in MenuItemInput) rules() menuItemRules {
	return menuItemRules{
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Price:           in.Price,
		Ingredients:     in.Ingredients,
		PreparationTime: in.PreparationTime,
		ImageURL:        in.ImageURL,
	}
}

// apply merges the patch over current item values.
func (p MenuItemPatch) apply(item model.MenuItem) MenuItemInput {
	price := item.Price
	available := item.IsAvailable
	in := MenuItemInput{
		Name:            item.Name,
		Description:     item.Description,
		Category:        item.Category,
		Price:           &price,
		Ingredients:     item.Ingredients,
		IsAvailable:     &available,
		PreparationTime: item.PreparationTime,
		ImageURL:        item.ImageURL,
	}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if p.Price != nil {
		in.Price = p.Price
	}
	if p.Ingredients != nil {
		in.Ingredients = *p.Ingredients
		if in.Ingredients == nil {
			in.Ingredients = []string{}
		}
	}
	if p.IsAvailable != nil {
		in.IsAvailable = p.IsAvailable
	}
	if p.PreparationTime != nil {
		in.PreparationTime = p.PreparationTime
	}
	if p.ImageURL != nil {
		in.ImageURL = *p.ImageURL
	}
	return in
}

// MenuUseCase manages the menu catalog.
type MenuUseCase struct {
	menu     repository.MenuRepository
	settings Settings
	now      func() time.Time
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository, settings Settings) *MenuUseCase {
	return &MenuUseCase{menu: menu, settings: settings, now: time.Now}
}

// List returns a filtered page of the menu ordered by category and name.
func (u *MenuUseCase) List(ctx context.Context, filter model.MenuFilter, page model.Page) ([]model.MenuItem, model.PageInfo, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, model.PageInfo{}, invalidField("category", fieldMessages["category"][""])
	}
	page = u.settings.normalizePage(page)
	items, total, err := u.menu.List(ctx, filter, page)
	if err != nil {
		return nil, model.PageInfo{}, err
	}
	return items, model.NewPageInfo(page, total), nil
}

// Search runs a relevance ordered text search over names and ingredients.
func (u *MenuUseCase) Search(ctx context.Context, query string, page model.Page) ([]model.MenuItem, model.PageInfo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.PageInfo{}, invalidField("q", "Search query is required")
	}
	page = u.settings.normalizePage(page)
	items, total, err := u.menu.Search(ctx, query, page)
	if err != nil {
		return nil, model.PageInfo{}, err
	}
	return items, model.NewPageInfo(page, total), nil
}

// Get returns a single menu item.
func (u *MenuUseCase) Get(ctx context.Context, id string) (*model.MenuItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return u.menu.GetByID(ctx, id)
}

// Create validates and stores a new menu item.
func (u *MenuUseCase) Create(ctx context.Context, in MenuItemInput) (*model.MenuItem, error) {
	in.normalize()
	if err := validateStruct(in.rules()); err != nil {
		return nil, err
	}

	now := u.now()
	item := model.MenuItem{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Price:           *in.Price,
		Ingredients:     model.NormalizeIngredients(in.Ingredients),
		IsAvailable:     true,
		PreparationTime: in.PreparationTime,
		ImageURL:        in.ImageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	return u.menu.Create(ctx, item)
}

// Update applies a partial change; the merged item must satisfy the create rules.
func (u *MenuUseCase) Update(ctx context.Context, id string, patch MenuItemPatch) (*model.MenuItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	current, err := u.menu.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in := patch.apply(*current)
	in.normalize()
	if err := validateStruct(in.rules()); err != nil {
		return nil, err
	}

	current.Name = in.Name
	current.Description = in.Description
	current.Category = in.Category
	current.Price = *in.Price
	current.Ingredients = model.NormalizeIngredients(in.Ingredients)
	current.IsAvailable = *in.IsAvailable
	current.PreparationTime = in.PreparationTime
	current.ImageURL = in.ImageURL
	current.UpdatedAt = u.now()
	return u.menu.Update(ctx, *current)
}

// Delete removes a menu item. Orders keep their snapshot lines.
func (u *MenuUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return u.menu.Delete(ctx, id)
}

// ToggleAvailability flips the availability flag and returns the stored item.
func (u *MenuUseCase) ToggleAvailability(ctx context.Context, id string) (*model.MenuItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return u.menu.ToggleAvailability(ctx, id)
}
