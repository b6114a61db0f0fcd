package handlers

import (
	"net/http"
	"time"

	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

type DashboardHandlers struct {
	dashboardService services.DashboardService
}

func NewDashboardHandlers(dashboardService services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

func (h *DashboardHandlers) Stats(c echo.Context) error {
	stats, err := h.dashboardService.Stats(c.Request().Context(), time.Now())
	if err != nil {
		return serviceError(err, "load dashboard")
	}
	return c.JSON(http.StatusOK, stats)
}
