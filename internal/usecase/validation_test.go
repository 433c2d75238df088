package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(v int) *int { return &v }

func validMenuRules() menuItemRules {
	return menuItemRules{
		Name:     "Tomato Soup",
		Category: model.CategoryAppetizer,
		Price:    price("6.50"),
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestMenuItemRules(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*menuItemRules)
		field   string
		message string
	}{
		{"missing name", func(r *menuItemRules) { r.Name = "" }, "name", "Name is required"},
		{"long name", func(r *menuItemRules) { r.Name = strings.Repeat("a", 101) }, "name", "Name cannot exceed 100 characters"},
		{"long description", func(r *menuItemRules) { r.Description = strings.Repeat("d", 501) }, "description", "Description cannot exceed 500 characters"},
		{"unknown category", func(r *menuItemRules) { r.Category = "Snack" }, "category", "Category must be one of: Appetizer, Main Course, Dessert, Beverage"},
		{"missing price", func(r *menuItemRules) { r.Price = nil }, "price", "Price is required"},
		{"negative price", func(r *menuItemRules) { r.Price = price("-0.01") }, "price", "Price must be between 0 and 9999.99"},
		{"price too high", func(r *menuItemRules) { r.Price = price("10000") }, "price", "Price must be between 0 and 9999.99"},
		{"fractional cents", func(r *menuItemRules) { r.Price = price("1.005") }, "price", "Price cannot have more than 2 decimal places"},
		{"empty ingredients", func(r *menuItemRules) { r.Ingredients = []string{} }, "ingredients", "Ingredients array must contain non-empty strings"},
		{"blank ingredient", func(r *menuItemRules) { r.Ingredients = []string{"basil", "  "} }, "ingredients", "Ingredients array must contain non-empty strings"},
		{"long ingredient", func(r *menuItemRules) { r.Ingredients = []string{strings.Repeat("x", 51)} }, "ingredients", "Ingredient name cannot exceed 50 characters"},
		{"zero prep time", func(r *menuItemRules) { r.PreparationTime = intPtr(0) }, "preparationTime", "Preparation time must be between 1 and 180 minutes"},
		{"long prep time", func(r *menuItemRules) { r.PreparationTime = intPtr(181) }, "preparationTime", "Preparation time must be between 1 and 180 minutes"},
		{"bad image url", func(r *menuItemRules) { r.ImageURL = "ftp://example.com/a.png" }, "imageUrl", "Image URL must be a valid URL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rules := validMenuRules()
			tc.mutate(&rules)
			fields := fieldErrors(t, validateStruct(rules))
			if fields[tc.field] != tc.message {
				t.Fatalf("expected %q for %s, got %v", tc.message, tc.field, fields)
			}
		})
	}
}

func TestMenuItemRulesAcceptBoundaries(t *testing.T) {
	rules := validMenuRules()
	rules.Price = price("0")
	rules.PreparationTime = intPtr(180)
	rules.Ingredients = []string{"tomato", "basil"}
	rules.ImageURL = "https://example.com/soup.jpg"
	if err := validateStruct(rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules.Price = price("9999.99")
	rules.PreparationTime = intPtr(1)
	if err := validateStruct(rules); err != nil {
		t.Fatalf("unexpected error at upper price bound: %v", err)
	}

	for _, p := range []string{"12.5", "0.01", "7", "1.10"} {
		rules.Price = price(p)
		if err := validateStruct(rules); err != nil {
			t.Fatalf("unexpected error for price %s: %v", p, err)
		}
	}
}

func TestOrderInputRules(t *testing.T) {
	err := validateStruct(OrderInput{
		Items: []OrderLineInput{
			{MenuItemID: uuid.NewString(), Quantity: 1},
			{MenuItemID: "not-an-id", Quantity: 100},
		},
		CustomerName: strings.Repeat("c", 101),
		TableNumber:  0,
	})
	fields := fieldErrors(t, err)

	expected := map[string]string{
		"items[1].menuItem": "Valid menu item ID is required for each item",
		"items[1].quantity": "Quantity must be between 1 and 99 for each item",
		"customerName":      "Customer name cannot exceed 100 characters",
		"tableNumber":       "Table number must be between 1 and 99",
	}
	for field, msg := range expected {
		if fields[field] != msg {
			t.Fatalf("expected %q for %s, got %v", msg, field, fields)
		}
	}
	if len(fields) != len(expected) {
		t.Fatalf("unexpected extra errors: %v", fields)
	}
}

func TestOrderInputRequiresItems(t *testing.T) {
	for _, items := range [][]OrderLineInput{nil, {}} {
		fields := fieldErrors(t, validateStruct(OrderInput{Items: items, CustomerName: "Ann", TableNumber: 3}))
		if fields["items"] != "Items array is required and must contain at least one item" {
			t.Fatalf("unexpected errors %v", fields)
		}
	}
}

func TestStatusRules(t *testing.T) {
	if err := validateStruct(statusRules{Status: model.OrderStatusReady}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields := fieldErrors(t, validateStruct(statusRules{Status: "Served"}))
	if fields["status"] != "Status must be one of: Pending, Preparing, Ready, Delivered, Cancelled" {
		t.Fatalf("unexpected errors %v", fields)
	}
}

func TestCheckID(t *testing.T) {
	if err := checkID(uuid.NewString()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"", "42", "665f1c2e9b1e8a3d4c5b6a79"} {
		if err := checkID(id); !errors.Is(err, domainErrors.ErrMalformedID) {
			t.Fatalf("expected malformed id for %q, got %v", id, err)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	s := Settings{DefaultPageSize: 20, MaxPageSize: 50}
	cases := []struct {
		in   model.Page
		want model.Page
	}{
		{model.Page{}, model.Page{Number: 1, Limit: 20}},
		{model.Page{Number: -3, Limit: -1}, model.Page{Number: 1, Limit: 20}},
		{model.Page{Number: 4, Limit: 10}, model.Page{Number: 4, Limit: 10}},
		{model.Page{Number: 2, Limit: 500}, model.Page{Number: 2, Limit: 50}},
	}
	for _, tc := range cases {
		if got := s.normalizePage(tc.in); got != tc.want {
			t.Fatalf("normalizePage(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}

	if got := (Settings{}).normalizePage(model.Page{}); got.Limit != fallbackPageSize {
		t.Fatalf("expected fallback page size, got %+v", got)
	}
}
