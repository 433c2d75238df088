package dto

import "time"

// OrderLineRequest requests a quantity of one menu item.
type OrderLineRequest struct {
	MenuItem string `json:"menuItem"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the body of POST /api/orders.
type OrderRequest struct {
	Items        []OrderLineRequest `json:"items"`
	CustomerName string             `json:"customerName"`
	TableNumber  int                `json:"tableNumber"`
}

// StatusRequest is the body of PATCH /api/orders/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse is an order line with the referenced item expanded.
// MenuItem is null when the item was deleted after the order was placed.
type OrderLineResponse struct {
	MenuItemID string           `json:"menuItemId"`
	MenuItem   *MenuItemSummary `json:"menuItem"`
	Quantity   int              `json:"quantity"`
	Price      Money            `json:"price"`
	Subtotal   Money            `json:"subtotal"`
}

// OrderResponse is an order with display fields.
type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"orderNumber"`
	Items          []OrderLineResponse `json:"items"`
	TotalAmount    Money               `json:"totalAmount"`
	FormattedTotal string              `json:"formattedTotal"`
	ItemCount      int                 `json:"itemCount"`
	Status         string              `json:"status"`
	CustomerName   string              `json:"customerName"`
	TableNumber    int                 `json:"tableNumber"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}
