package handler

import (
	"gamebrain/internal/history"
	"gamebrain/internal/usecase"
)

var (
	authHandler      *AuthHandler
	browseHandler    *BrowseHandler
	dashboardHandler *DashboardHandler
	historyHandler   *HistoryHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	browseManager *usecase.BrowseManager,
	dashboardUseCase *usecase.DashboardUseCase,
	historyStore *history.Store,
) {
	authHandler = NewAuthHandler(authUseCase)
	browseHandler = NewBrowseHandler(browseManager)
	dashboardHandler = NewDashboardHandler(dashboardUseCase)
	historyHandler = NewHistoryHandler(historyStore)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetBrowseHandler() *BrowseHandler {
	return browseHandler
}

func GetDashboardHandler() *DashboardHandler {
	return dashboardHandler
}

func GetHistoryHandler() *HistoryHandler {
	return historyHandler
}
