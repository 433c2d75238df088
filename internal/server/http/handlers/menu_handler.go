package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/bistro/internal/domain/model"
	"github.com/polkiloo/bistro/internal/server/http/dto"
	"github.com/polkiloo/bistro/internal/usecase"
)

var menuMessages = errorMessages{
	notFound:  "Menu item not found",
	malformed: "Invalid menu item ID format",
	conflict:  "Menu item with this name already exists",
	server:    "Server error while processing menu request",
}

// MenuHandler manages menu catalog endpoints.
type MenuHandler struct {
	facade MenuFacade
	logger *slog.Logger
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(facade MenuFacade, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{facade: facade, logger: logger}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(c *gin.Context) {
	filter := model.MenuFilter{Category: model.Category(c.Query("category"))}
	if v, ok := c.GetQuery("availability"); ok && v != "" {
		available := v == "true"
		filter.Available = &available
	}
	var ok bool
	if filter.MinPrice, ok = queryDecimal(c, "minPrice"); !ok {
		return
	}
	if filter.MaxPrice, ok = queryDecimal(c, "maxPrice"); !ok {
		return
	}

	items, info, err := h.facade.MenuItems(c.Request.Context(), filter, pageFromQuery(c))
	if err != nil {
		fail(c, h.logger, err, menuMessages)
		return
	}
	respondPage(c, toMenuItemResponses(items), info)
}

// Search handles GET /api/menu/search.
func (h *MenuHandler) Search(c *gin.Context) {
	items, info, err := h.facade.SearchMenu(c.Request.Context(), c.Query("q"), pageFromQuery(c))
	if err != nil {
		fail(c, h.logger, err, menuMessages)
		return
	}
	respondPage(c, toMenuItemResponses(items), info)
}

// Get handles GET /api/menu/:id.
func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.facade.MenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err, menuMessages)
		return
	}
	respond(c, http.StatusOK, "", toMenuItemResponse(*item))
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	in := usecase.MenuItemInput{
		Price:           req.Price,
		IsAvailable:     req.IsAvailable,
		PreparationTime: req.PreparationTime,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Category != nil {
		in.Category = model.Category(*req.Category)
	}
	if req.Ingredients != nil {
		in.Ingredients = *req.Ingredients
	}
	if req.ImageURL != nil {
		in.ImageURL = *req.ImageURL
	}

	item, err := h.facade.CreateMenuItem(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err, menuMessages)
		return
	}
	respond(c, http.StatusCreated, "Menu item created successfully", toMenuItemResponse(*item))
}

// Update handles PUT /api/menu/:id. Only fields present in the body change.
func (h *MenuHandler) Update(c *gin.Context) {
	var req dto.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c)
		return
	}

	patch := usecase.MenuItemPatch{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Ingredients:     req.Ingredients,
		IsAvailable:     req.IsAvailable,
		PreparationTime: req.PreparationTime,
		ImageURL:        req.ImageURL,
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		patch.Category = &category
	}

	item, err := h.facade.UpdateMenuItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, h.logger, err, menuMessages)
		return
	}
	respond(c, http.StatusOK, "Menu item updated successfully", toMenuItemResponse(*item))
}

// Delete handles DELETE /api/menu/:id.
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.logger, err, menuMessages)
		return
	}
	respond(c, http.StatusOK, "Menu item deleted successfully", nil)
}

// ToggleAvailability handles PATCH /api/menu/:id/availability.
func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	item, err := h.facade.ToggleAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.logger, err, menuMessages)
		return
	}
	state := "unavailable"
	if item.IsAvailable {
		state = "available"
	}
	respond(c, http.StatusOK, "Menu item marked as "+state, toMenuItemResponse(*item))
}

// queryDecimal parses an optional decimal query parameter. On a malformed value
// it writes a validation response and reports false.
func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: "Validation failed",
			Errors:  []dto.FieldError{{Field: key, Message: key + " must be a number"}},
		})
		return nil, false
	}
	return &d, true
}
