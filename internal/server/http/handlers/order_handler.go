package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/server/http/dto"
	"github.com/polkiloo/bistro/internal/usecase"
)

var orderMessages = errorMessages{
	notFound:  "Order not found",
	malformed: "Invalid order ID format",
	conflict:  "Duplicate order number generated",
	server:    "Server error while processing order request",
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	filter := model.OrderFilter{
		Status:    model.OrderStatus(c.Query("status")),
		SortBy:    model.OrderSortField(c.Query("sortBy")),
		SortOrder: model.SortOrder(c.Query("sortOrder")),
	}
	orders, info, err := h.facade.Orders(c.Request.Context(), filter, pageFromQuery(c))
	if err != nil {
		fail(c, h.logger, err, orderMessages)
		return
	}
	respondPage(c, toOrderResponses(orders), info)
}

// Search handles GET /api/orders/search.
func (h *OrderHandler) Search(c *gin.Context) {
	orders, info, err := h.facade.SearchOrders(c.Request.Context(), c.Query("q"), pageFromQuery(c))
	if err != nil {
		fail(c, h.logger, err, orderMessages)
		return
	}
	respondPage(c, toOrderResponses(orders), info)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err, orderMessages)
		return
	}
	respond(c, http.StatusOK, "", toOrderResponse(*order))
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	in := usecase.OrderInput{
		CustomerName: req.CustomerName,
		TableNumber:  req.TableNumber,
	}
	if req.Items != nil {
		in.Items = make([]usecase.OrderLineInput, 0, len(req.Items))
		for _, line := range req.Items {
			in.Items = append(in.Items, usecase.OrderLineInput{MenuItemID: line.MenuItem, Quantity: line.Quantity})
		}
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err, orderMessages)
		return
	}
	respond(c, http.StatusCreated, "Order created successfully", toOrderResponse(*order))
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		fail(c, h.logger, err, orderMessages)
		return
	}
	respond(c, http.StatusOK, "Order status updated to "+string(order.Status), toOrderResponse(*order))
}
