// Package seed loads the sample catalog and demo orders into a running backend.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/usecase"
)

//go:embed menu.yaml
var menuYAML []byte

type catalogFile struct {
	Items []catalogItem `yaml:"items"`
}

type catalogItem struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	Price           string   `yaml:"price"`
	Ingredients     []string `yaml:"ingredients"`
	Available       *bool    `yaml:"isAvailable"`
	PreparationTime *int     `yaml:"preparationTime"`
	ImageURL        string   `yaml:"imageUrl"`
}

// MenuCreator stores new menu items.
type MenuCreator interface {
	Create(ctx context.Context, in usecase.MenuItemInput) (*model.MenuItem, error)
}

// OrderPlacer places orders.
type OrderPlacer interface {
	Create(ctx context.Context, in usecase.OrderInput) (*model.OrderDetails, error)
}

// Result counts what a seed run did.
type Result struct {
	Created int
	Skipped int
}

// Catalog returns the embedded sample menu.
func Catalog() ([]usecase.MenuItemInput, error) {
	return Parse(menuYAML)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) ([]usecase.MenuItemInput, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]usecase.MenuItemInput, 0, len(file.Items))
	for i, item := range file.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog item %d (%s): invalid price %q: %w", i, item.Name, item.Price, err)
		}
		out = append(out, usecase.MenuItemInput{
			Name:            item.Name,
			Description:     item.Description,
			Category:        model.Category(item.Category),
			Price:           &price,
			Ingredients:     item.Ingredients,
			IsAvailable:     item.Available,
			PreparationTime: item.PreparationTime,
			ImageURL:        item.ImageURL,
		})
	}
	return out, nil
}

// Menu creates every catalog item. Items whose name is already taken are skipped.
func Menu(ctx context.Context, menu MenuCreator, items []usecase.MenuItemInput, logger *slog.Logger) (Result, error) {
	var res Result
	for _, in := range items {
		_, err := menu.Create(ctx, in)
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			res.Skipped++
			logger.Debug("menu item exists, skipping", slog.String("name", in.Name))
		case err != nil:
			return res, fmt.Errorf("seed %s: %w", in.Name, err)
		default:
			res.Created++
		}
	}
	return res, nil
}

var customerNames = []string{
	"John Smith", "Emily Johnson", "Michael Brown", "Sarah Davis", "David Wilson",
	"Lisa Anderson", "Robert Taylor", "Jennifer Thomas", "William Martinez", "Patricia Garcia",
}

// Orders places n demo orders of one to three random available items.
func Orders(ctx context.Context, placer OrderPlacer, menu []model.MenuItem, n int, rng *rand.Rand) (int, error) {
	available := make([]model.MenuItem, 0, len(menu))
	for _, item := range menu {
		if item.IsAvailable {
			available = append(available, item)
		}
	}
	if n <= 0 {
		return 0, nil
	}
	if len(available) == 0 {
		return 0, errors.New("no available menu items to order")
	}

	placed := 0
	for i := 0; i < n; i++ {
		lines := make([]usecase.OrderLineInput, 0, 3)
		for j := rng.Intn(3) + 1; j > 0; j-- {
			item := available[rng.Intn(len(available))]
			lines = append(lines, usecase.OrderLineInput{MenuItemID: item.ID, Quantity: rng.Intn(3) + 1})
		}
		_, err := placer.Create(ctx, usecase.OrderInput{
			Items:        lines,
			CustomerName: customerNames[i%len(customerNames)],
			TableNumber:  rng.Intn(20) + 1,
		})
		if err != nil {
			return placed, fmt.Errorf("place demo order %d: %w", i+1, err)
		}
		placed++
	}
	return placed, nil
}
