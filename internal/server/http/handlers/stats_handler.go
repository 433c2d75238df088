package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

var statsMessages = errorMessages{
	notFound:  "Not found",
	malformed: "Invalid request",
	conflict:  "Conflict",
	server:    "Server error while computing order statistics",
}

// StatsHandler serves order statistics.
type StatsHandler struct {
	facade StatsFacade
	logger *slog.Logger
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(facade StatsFacade, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{facade: facade, logger: logger}
}

// Stats handles GET /api/orders/stats.
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.facade.OrderStats(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err, statsMessages)
		return
	}
	respond(c, http.StatusOK, "", toStatsResponse(*stats))
}

// TopSellers handles GET /api/orders/analytics/top-sellers.
func (h *StatsHandler) TopSellers(c *gin.Context) {
	sellers, err := h.facade.TopSellers(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		fail(c, h.logger, err, statsMessages)
		return
	}
	respond(c, http.StatusOK, "", toTopSellerResponses(sellers))
}
