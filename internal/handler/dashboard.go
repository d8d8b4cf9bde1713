package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
	errorLogService  service.ErrorLogService
}

func NewDashboardHandler(dashboardService service.DashboardService, errorLogService service.ErrorLogService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		errorLogService:  errorLogService,
	}
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.dashboardService.Stats(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) ListErrorLogs(c echo.Context) error {
	ctx := c.Request().Context()

	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	entries, total, err := h.errorLogService.List(ctx, c.QueryParam("type"), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paginated(entries, total, q))
}
