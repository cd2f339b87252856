package router

import (
	"gamebrain/internal/adapter/api/handler"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// SetupBrowseRouter initializes the guide browser routes. Browsing is
// open to signed-out visitors; a Bearer token, when present, binds the
// caller to the session so favorites and likes resolve to them.
func SetupBrowseRouter(e *echo.Echo, authClient *auth.Client) {
	browseHandler := handler.GetBrowseHandler()

	games := e.Group("/v1/games")
	games.Use(VerifyToken(authClient))
	games.POST("/:gameId/browse", browseHandler.Open)

	browse := e.Group("/v1/browse")
	browse.Use(VerifyToken(authClient))
	browse.POST("/:id/more", browseHandler.LoadMore)
	browse.GET("/:id/search", browseHandler.Search)
	browse.GET("/:id/sort", browseHandler.Sort)
	browse.GET("/:id/cards", browseHandler.Cards)
	browse.POST("/:id/guides", browseHandler.CreateGuide)
	browse.POST("/:id/guides/:guideId/favorite", browseHandler.ToggleFavorite)
	browse.POST("/:id/guides/:guideId/like", browseHandler.Like)
	browse.DELETE("/:id", browseHandler.Close)
}
