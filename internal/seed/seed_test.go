package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/storage/memory"
	"github.com/polkiloo/bistro/internal/usecase"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestCatalogIsValid(t *testing.T) {
	items, err := Catalog()
	require.NoError(t, err)
	require.Len(t, items, 17)

	perCategory := map[model.Category]int{}
	for _, item := range items {
		require.True(t, item.Category.Valid(), "item %s has category %q", item.Name, item.Category)
		require.NotNil(t, item.Price)
		require.NotEmpty(t, item.Ingredients)
		perCategory[item.Category]++
	}
	require.Equal(t, map[model.Category]int{
		model.CategoryAppetizer:  4,
		model.CategoryMainCourse: 5,
		model.CategoryDessert:    4,
		model.CategoryBeverage:   4,
	}, perCategory)

	require.Equal(t, "Caesar Salad", items[0].Name)
	require.True(t, items[0].Price.Equal(decimal.RequireFromString("8.99")))
	require.Equal(t, 10, *items[0].PreparationTime)
}

func TestParseRejectsBadPrice(t *testing.T) {
	_, err := Parse([]byte("items:\n  - name: Soup\n    category: Appetizer\n    price: cheap\n"))
	require.Error(t, err)

	_, err = Parse([]byte("items: [unterminated"))
	require.Error(t, err)
}

func newUseCases() (*usecase.MenuUseCase, *usecase.OrderUseCase) {
	store := memory.New()
	settings := usecase.Settings{DefaultPageSize: 20, MaxPageSize: 100, Location: time.UTC}
	return usecase.NewMenuUseCase(store.Menu(), settings), usecase.NewOrderUseCase(store.Orders(), store.Menu(), settings)
}

func TestMenuSkipsExistingNames(t *testing.T) {
	ctx := context.Background()
	menu, _ := newUseCases()
	items, err := Catalog()
	require.NoError(t, err)

	res, err := Menu(ctx, menu, items, discard)
	require.NoError(t, err)
	require.Equal(t, Result{Created: 17}, res)

	res, err = Menu(ctx, menu, items, discard)
	require.NoError(t, err)
	require.Equal(t, Result{Skipped: 17}, res)

	stored, info, err := menu.List(ctx, model.MenuFilter{}, model.Page{})
	require.NoError(t, err)
	require.Equal(t, 17, info.Total)
	require.Len(t, stored, 17)
}

type failingCreator struct{}

func (failingCreator) Create(context.Context, usecase.MenuItemInput) (*model.MenuItem, error) {
	return nil, errors.New("disk full")
}

func TestMenuStopsOnStorageError(t *testing.T) {
	items, err := Catalog()
	require.NoError(t, err)
	_, err = Menu(context.Background(), failingCreator{}, items, discard)
	require.ErrorContains(t, err, "disk full")
}

func TestOrdersPlacesDemoOrders(t *testing.T) {
	ctx := context.Background()
	menu, orders := newUseCases()
	items, err := Catalog()
	require.NoError(t, err)
	_, err = Menu(ctx, menu, items, discard)
	require.NoError(t, err)

	stored, _, err := menu.List(ctx, model.MenuFilter{}, model.Page{Limit: 100})
	require.NoError(t, err)

	placed, err := Orders(ctx, orders, stored, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, 10, placed)

	list, info, err := orders.List(ctx, model.OrderFilter{}, model.Page{Limit: 100})
	require.NoError(t, err)
	require.Equal(t, 10, info.Total)
	for _, order := range list {
		require.Equal(t, model.OrderStatusPending, order.Status)
		require.True(t, order.TotalAmount.Equal(model.ComputeTotal(order.Items)))
	}
}

func TestOrdersNeedsAvailableItems(t *testing.T) {
	_, orders := newUseCases()
	_, err := Orders(context.Background(), orders, []model.MenuItem{{ID: "x", IsAvailable: false}}, 3, rand.New(rand.NewSource(1)))
	require.Error(t, err)

	placed, err := Orders(context.Background(), orders, nil, 0, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Zero(t, placed)
}
