package routes

import (
	"context"
	"medicore/cmd/internal/service"
	"medicore/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type DashboardService interface {
	GetStats(ctx context.Context) (*service.DashboardStats, apierror.ErrorResponse)
}

type DefaultDashboardRoute struct {
	DashboardService DashboardService
}

func NewDashboardDefault(dashboardService DashboardService) *DefaultDashboardRoute {
	return &DefaultDashboardRoute{DashboardService: dashboardService}
}

func (d *DefaultDashboardRoute) GetDashboard(c echo.Context) error {
	stats, apierr := d.DashboardService.GetStats(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, stats)
}
