package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category groups menu items on the printed menu.
type Category string

const (
	CategoryAppetizer  Category = "Appetizer"
	CategoryMainCourse Category = "Main Course"
	CategoryDessert    Category = "Dessert"
	CategoryBeverage   Category = "Beverage"
)

// Categories lists every supported category in menu order.
var Categories = []Category{CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultIngredient is stored when an item is saved without ingredients.
const DefaultIngredient = "Not specified"

// MenuItem is a dish or drink offered by the restaurant.
type MenuItem struct {
	ID              string
	Name            string
	Description     string
	Category        Category
	Price           decimal.Decimal
	Ingredients     []string
	IsAvailable     bool
	PreparationTime *int
	ImageURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SearchText is the text matched by full-text menu search.
func (m MenuItem) SearchText() string {
	return strings.TrimSpace(m.Name + " " + strings.Join(m.Ingredients, " "))
}

// Summary returns the fields shown next to order lines and rankings.
func (m MenuItem) Summary() MenuItemSummary {
	return MenuItemSummary{
		ID:       m.ID,
		Name:     m.Name,
		Category: m.Category,
		Price:    m.Price,
		ImageURL: m.ImageURL,
	}
}

// MenuItemSummary is a compact view of a menu item.
type MenuItemSummary struct {
	ID       string
	Name     string
	Category Category
	Price    decimal.Decimal
	ImageURL string
}

// NormalizeIngredients trims entries and falls back to DefaultIngredient for an empty list.
func NormalizeIngredients(ingredients []string) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, strings.TrimSpace(ing))
	}
	if len(out) == 0 {
		return []string{DefaultIngredient}
	}
	return out
}

// FormatPrice renders an amount in the canonical display currency.
func FormatPrice(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
