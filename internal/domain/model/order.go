package model

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the kitchen lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists statuses in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Pending may skip to Ready and Preparing may skip to Delivered.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusReady, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	next := statusTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no transitions leave s.
func (s OrderStatus) Terminal() bool {
	return s.Valid() && len(statusTransitions[s]) == 0
}

// OrderLine is one menu item entry of an order with the price captured at creation.
type OrderLine struct {
	MenuItemID string
	Quantity   int
	Price      decimal.Decimal
}

// Subtotal returns price multiplied by quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a table's order tracked through the kitchen.
type Order struct {
	ID           string
	Number       string
	Items        []OrderLine
	TotalAmount  decimal.Decimal
	Status       OrderStatus
	CustomerName string
	TableNumber  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ItemCount sums quantities over all lines.
func (o Order) ItemCount() int {
	count := 0
	for _, line := range o.Items {
		count += line.Quantity
	}
	return count
}

// ComputeTotal sums line subtotals.
func ComputeTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

const orderDayLayout = "20060102"

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-\d{4,}$`)

// OrderDay returns the YYYYMMDD key used to sequence order numbers.
func OrderDay(t time.Time) string {
	return t.Format(orderDayLayout)
}

// FormatOrderNumber builds ORD-<day>-<sequence> with the sequence zero padded to
// four digits. Sequences above 9999 print in full.
func FormatOrderNumber(day string, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day, seq)
}

// ValidOrderNumber reports whether number has the ORD-YYYYMMDD-NNNN shape. The
// sequence holds at least four digits so numbers past the 9999th order of a day
// stay valid.
func ValidOrderNumber(number string) bool {
	return orderNumberPattern.MatchString(number)
}

// OrderLineDetails pairs a line with the current menu item it references.
// Item is nil when the menu item has since been deleted.
type OrderLineDetails struct {
	OrderLine
	Item *MenuItemSummary
}

// OrderDetails is an order with its lines expanded.
type OrderDetails struct {
	Order
	Lines []OrderLineDetails
}

// ExpandOrder joins order lines with the supplied menu item summaries.
func ExpandOrder(order Order, items map[string]MenuItemSummary) OrderDetails {
	lines := make([]OrderLineDetails, 0, len(order.Items))
	for _, line := range order.Items {
		details := OrderLineDetails{OrderLine: line}
		if item, ok := items[line.MenuItemID]; ok {
			details.Item = &item
		}
		lines = append(lines, details)
	}
	return OrderDetails{Order: order, Lines: lines}
}
