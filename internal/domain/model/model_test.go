package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "Pending"},
		{"preparing", OrderStatusPreparing, "Preparing"},
		{"ready", OrderStatusReady, "Ready"},
		{"delivered", OrderStatusDelivered, "Delivered"},
		{"cancelled", OrderStatusCancelled, "Cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("Lost").Valid() {
		t.Fatal("unexpected valid status")
	}
}

func TestStatusTransitionTable(t *testing.T) {
	allowed := map[OrderStatus]map[OrderStatus]bool{
		OrderStatusPending:   {OrderStatusPreparing: true, OrderStatusReady: true, OrderStatusCancelled: true},
		OrderStatusPreparing: {OrderStatusReady: true, OrderStatusDelivered: true, OrderStatusCancelled: true},
		OrderStatusReady:     {OrderStatusDelivered: true, OrderStatusCancelled: true},
		OrderStatusDelivered: {},
		OrderStatusCancelled: {},
	}

	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			want := allowed[from][to]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}

	for _, s := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusPreparing, OrderStatusReady} {
		if s.Terminal() {
			t.Errorf("did not expect %s to be terminal", s)
		}
	}
	if OrderStatus("Lost").CanTransitionTo(OrderStatusReady) {
		t.Error("unknown status must not transition")
	}
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	next := OrderStatusPending.AllowedTransitions()
	next[0] = OrderStatusDelivered
	if OrderStatusPending.CanTransitionTo(OrderStatusDelivered) {
		t.Fatal("mutating returned slice must not alter the table")
	}
}

func TestComputeTotal(t *testing.T) {
	lines := []OrderLine{
		{MenuItemID: "a", Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{MenuItemID: "b", Quantity: 3, Price: decimal.RequireFromString("0.10")},
	}
	total := ComputeTotal(lines)
	if !total.Equal(decimal.RequireFromString("20.30")) {
		t.Fatalf("expected 20.30, got %s", total)
	}
	if !ComputeTotal(nil).IsZero() {
		t.Fatal("expected zero total for no lines")
	}

	order := Order{Items: lines}
	if order.ItemCount() != 5 {
		t.Fatalf("expected item count 5, got %d", order.ItemCount())
	}
}

func TestOrderNumberFormat(t *testing.T) {
	day := OrderDay(time.Date(2024, time.January, 15, 23, 59, 0, 0, time.UTC))
	if day != "20240115" {
		t.Fatalf("unexpected day key %s", day)
	}
	number := FormatOrderNumber(day, 1)
	if number != "ORD-20240115-0001" {
		t.Fatalf("unexpected order number %s", number)
	}
	if !ValidOrderNumber(number) {
		t.Fatalf("expected %s to be valid", number)
	}
	wide := FormatOrderNumber(day, 10000)
	if wide != "ORD-20240115-10000" || !ValidOrderNumber(wide) {
		t.Fatalf("expected %s to be a valid widened order number", wide)
	}
	for _, bad := range []string{"", "ORD-2024011-0001", "ORD-20240115-1", "XYZ-20240115-0001"} {
		if ValidOrderNumber(bad) {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestNormalizeIngredients(t *testing.T) {
	if got := NormalizeIngredients(nil); len(got) != 1 || got[0] != DefaultIngredient {
		t.Fatalf("expected default ingredient, got %v", got)
	}
	got := NormalizeIngredients([]string{" basil ", "tomato"})
	if len(got) != 2 || got[0] != "basil" || got[1] != "tomato" {
		t.Fatalf("unexpected ingredients %v", got)
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("expected %s to be valid", c)
		}
	}
	if Category("Snack").Valid() {
		t.Error("unexpected valid category")
	}
}

func TestExpandOrder(t *testing.T) {
	order := Order{Items: []OrderLine{{MenuItemID: "a", Quantity: 1}, {MenuItemID: "gone", Quantity: 2}}}
	details := ExpandOrder(order, map[string]MenuItemSummary{"a": {ID: "a", Name: "Soup"}})
	if len(details.Lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(details.Lines))
	}
	if details.Lines[0].Item == nil || details.Lines[0].Item.Name != "Soup" {
		t.Fatalf("expected first line to be expanded, got %+v", details.Lines[0])
	}
	if details.Lines[1].Item != nil {
		t.Fatalf("expected deleted item to stay unexpanded")
	}
}

func TestPageInfo(t *testing.T) {
	info := NewPageInfo(Page{Number: 2, Limit: 20}, 41)
	if info.Pages != 3 || info.Total != 41 || info.Page != 2 {
		t.Fatalf("unexpected page info %+v", info)
	}
	if (Page{Number: 3, Limit: 10}).Offset() != 20 {
		t.Fatal("unexpected offset")
	}
	if NewPageInfo(Page{Number: 1, Limit: 20}, 0).Pages != 0 {
		t.Fatal("expected zero pages for empty result")
	}
}

func TestMenuFilterMatches(t *testing.T) {
	available := false
	min := decimal.NewFromInt(5)
	max := decimal.NewFromInt(10)
	filter := MenuFilter{Category: CategoryDessert, Available: &available, MinPrice: &min, MaxPrice: &max}

	item := MenuItem{Category: CategoryDessert, Price: decimal.NewFromInt(7)}
	if !filter.Matches(item) {
		t.Fatal("expected item to match")
	}
	item.IsAvailable = true
	if filter.Matches(item) {
		t.Fatal("availability filter not applied")
	}
	item.IsAvailable = false
	item.Price = decimal.NewFromInt(11)
	if filter.Matches(item) {
		t.Fatal("max price filter not applied")
	}
	item.Price = decimal.NewFromInt(7)
	item.Category = CategoryBeverage
	if filter.Matches(item) {
		t.Fatal("category filter not applied")
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(decimal.RequireFromString("12.5")); got != "$12.50" {
		t.Fatalf("unexpected formatted price %s", got)
	}
}
