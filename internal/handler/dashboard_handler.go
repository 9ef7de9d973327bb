package handler

import (
	"net/http"

	"service-plus/internal/dashboard"
	"service-plus/pkg/logger"
	"service-plus/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardHandler serves the superadmin dashboard aggregation endpoint.
type DashboardHandler struct {
	agg *dashboard.Aggregator
}

// NewDashboardHandler wires the handler's collaborators.
func NewDashboardHandler(agg *dashboard.Aggregator) *DashboardHandler {
	return &DashboardHandler{agg: agg}
}

// GetStats returns the cross-tenant dashboard aggregate.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DashboardStatsCounter.Inc()

	stats, err := h.agg.ComputeStats(c.Request().Context())
	if err != nil {
		log.Error("Dashboard aggregation failed", zap.Error(err))
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
