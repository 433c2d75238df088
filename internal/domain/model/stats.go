package model

import "github.com/shopspring/decimal"

// StatusTotals counts orders and revenue for one status.
type StatusTotals struct {
	Count   int
	Revenue decimal.Decimal
}

// OrderStats summarises the order ledger.
type OrderStats struct {
	ByStatus     map[OrderStatus]StatusTotals
	TotalOrders  int
	TotalRevenue decimal.Decimal
	TodayOrders  int
	TodayRevenue decimal.Decimal
}

// TopSeller ranks a menu item by quantity sold in non-cancelled orders.
type TopSeller struct {
	Item          MenuItemSummary
	TotalQuantity int
	TotalRevenue  decimal.Decimal
	OrderCount    int
}
