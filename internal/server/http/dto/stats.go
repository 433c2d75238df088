package dto

// StatusTotals counts orders and revenue for one status.
type StatusTotals struct {
	Count        int   `json:"count"`
	TotalRevenue Money `json:"totalRevenue"`
}

// StatsResponse is the body of GET /api/orders/stats.
type StatsResponse struct {
	ByStatus     map[string]StatusTotals `json:"byStatus"`
	TotalOrders  int                     `json:"totalOrders"`
	TotalRevenue Money                   `json:"totalRevenue"`
	TodayOrders  int                     `json:"todayOrders"`
	TodayRevenue Money                   `json:"todayRevenue"`
}

// TopSellerResponse ranks one menu item.
type TopSellerResponse struct {
	MenuItem      MenuItemSummary `json:"menuItem"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  Money           `json:"totalRevenue"`
	OrderCount    int             `json:"orderCount"`
}
