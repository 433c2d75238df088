package model

import "github.com/shopspring/decimal"

// Page selects a 1-based page of results.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of records to skip.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// PageInfo describes the position of a page inside the full result set.
type PageInfo struct {
	Page  int
	Limit int
	Total int
	Pages int
}

// NewPageInfo computes page count for total records.
func NewPageInfo(p Page, total int) PageInfo {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return PageInfo{Page: p.Number, Limit: p.Limit, Total: total, Pages: pages}
}

// MenuFilter narrows menu listings. Nil fields are not applied.
type MenuFilter struct {
	Category  Category
	Available *bool
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
}

// Matches reports whether item passes every set criterion.
func (f MenuFilter) Matches(item MenuItem) bool {
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.Available != nil && item.IsAvailable != *f.Available {
		return false
	}
	if f.MinPrice != nil && item.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && item.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// OrderSortField names a sortable order attribute.
type OrderSortField string

const (
	SortByCreatedAt    OrderSortField = "createdAt"
	SortByTotalAmount  OrderSortField = "totalAmount"
	SortByCustomerName OrderSortField = "customerName"
	SortByOrderNumber  OrderSortField = "orderNumber"
)

// Valid reports whether f is a supported sort field.
func (f OrderSortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByTotalAmount, SortByCustomerName, SortByOrderNumber:
		return true
	}
	return false
}

// SortOrder is ascending or descending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// OrderFilter narrows and orders order listings.
type OrderFilter struct {
	Status    OrderStatus
	SortBy    OrderSortField
	SortOrder SortOrder
}
