package handlers

import (
	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/server/http/dto"
)

func toMenuItemResponse(item model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Category:        string(item.Category),
		Price:           dto.Money(item.Price),
		FormattedPrice:  model.FormatPrice(item.Price),
		Ingredients:     item.Ingredients,
		IsAvailable:     item.IsAvailable,
		PreparationTime: item.PreparationTime,
		ImageURL:        item.ImageURL,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func toMenuItemResponses(items []model.MenuItem) []dto.MenuItemResponse {
	out := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toMenuItemResponse(item))
	}
	return out
}

func toSummary(item model.MenuItemSummary) dto.MenuItemSummary {
	return dto.MenuItemSummary{
		ID:       item.ID,
		Name:     item.Name,
		Category: string(item.Category),
		Price:    dto.Money(item.Price),
		ImageURL: item.ImageURL,
	}
}

func toOrderResponse(order model.OrderDetails) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		resp := dto.OrderLineResponse{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Price:      dto.Money(line.Price),
			Subtotal:   dto.Money(line.Subtotal()),
		}
		if line.Item != nil {
			summary := toSummary(*line.Item)
			resp.MenuItem = &summary
		}
		lines = append(lines, resp)
	}
	return dto.OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.Number,
		Items:          lines,
		TotalAmount:    dto.Money(order.TotalAmount),
		FormattedTotal: model.FormatPrice(order.TotalAmount),
		ItemCount:      order.ItemCount(),
		Status:         string(order.Status),
		CustomerName:   order.CustomerName,
		TableNumber:    order.TableNumber,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func toOrderResponses(orders []model.OrderDetails) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	return out
}

func toStatsResponse(stats model.OrderStats) dto.StatsResponse {
	byStatus := make(map[string]dto.StatusTotals, len(stats.ByStatus))
	for status, totals := range stats.ByStatus {
		byStatus[string(status)] = dto.StatusTotals{Count: totals.Count, TotalRevenue: dto.Money(totals.Revenue)}
	}
	return dto.StatsResponse{
		ByStatus:     byStatus,
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: dto.Money(stats.TotalRevenue),
		TodayOrders:  stats.TodayOrders,
		TodayRevenue: dto.Money(stats.TodayRevenue),
	}
}

func toTopSellerResponses(sellers []model.TopSeller) []dto.TopSellerResponse {
	out := make([]dto.TopSellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, dto.TopSellerResponse{
			MenuItem:      toSummary(s.Item),
			TotalQuantity: s.TotalQuantity,
			TotalRevenue:  dto.Money(s.TotalRevenue),
			OrderCount:    s.OrderCount,
		})
	}
	return out
}
