package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.dashboardService.Overview(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SuccessDegraded(overview, overview.Degraded))
}
