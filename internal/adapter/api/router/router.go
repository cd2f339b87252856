package router

import (
	"gamebrain/internal/adapter/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authClient *auth.Client) {
	SetupAuthRouter(e, authMiddleware)
	SetupBrowseRouter(e, authClient)
	SetupDashboardRouter(e, authMiddleware)
	SetupHistoryRouter(e)
	SetupHealthRouter(e)
}
