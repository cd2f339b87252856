package handler

import (
	"github.com/labstack/echo/v4"

	"gamebrain/internal/usecase"
	"gamebrain/pkg/errors"
	"gamebrain/pkg/response"
)

type DashboardHandler struct {
	dashboardUseCase *usecase.DashboardUseCase
}

func NewDashboardHandler(dashboardUseCase *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUseCase: dashboardUseCase,
	}
}

func (h *DashboardHandler) Overview(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return response.Error(c, errors.Unauthenticated("Authentication required", nil))
	}

	overview, err := h.dashboardUseCase.Overview(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, overview)
}
