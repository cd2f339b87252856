package router

import (
	"gamebrain/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

// SetupHistoryRouter initializes the view-history routes. History is
// client-local and works without authentication.
func SetupHistoryRouter(e *echo.Echo) {
	historyHandler := handler.GetHistoryHandler()

	e.GET("/v1/history", historyHandler.List)
	e.POST("/v1/history", historyHandler.Track)
	e.DELETE("/v1/history", historyHandler.Clear)
}
