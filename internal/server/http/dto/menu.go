package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemRequest is the body of create and update menu calls.
// Absent fields stay nil so updates can tell them from zero values.
type MenuItemRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	Price           *decimal.Decimal `json:"price"`
	Ingredients     *[]string        `json:"ingredients"`
	IsAvailable     *bool            `json:"isAvailable"`
	PreparationTime *int             `json:"preparationTime"`
	ImageURL        *string          `json:"imageUrl"`
}

// MenuItemResponse is a full menu item.
type MenuItemResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	Price           Money     `json:"price"`
	FormattedPrice  string    `json:"formattedPrice"`
	Ingredients     []string  `json:"ingredients"`
	IsAvailable     bool      `json:"isAvailable"`
	PreparationTime *int      `json:"preparationTime,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MenuItemSummary is the compact item shown inside orders and rankings.
type MenuItemSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    Money  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
}
