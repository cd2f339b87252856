package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gamebrain/internal/ui/view"
	"gamebrain/internal/usecase"
	"gamebrain/pkg/errors"
	"gamebrain/pkg/response"
)

type BrowseHandler struct {
	browseManager *usecase.BrowseManager
}

func NewBrowseHandler(browseManager *usecase.BrowseManager) *BrowseHandler {
	return &BrowseHandler{
		browseManager: browseManager,
	}
}

type browseResponse struct {
	SessionID string           `json:"session_id"`
	GameID    string           `json:"game_id"`
	GameName  string           `json:"game_name"`
	CanCreate bool             `json:"can_create"`
	Items     []view.GuideCard `json:"items"`
	HasMore   bool             `json:"hasMore"`
}

// Open starts a browse session for a game page and returns the first
// page of guides. The session id identifies the page context on all
// follow-up calls.
func (h *BrowseHandler) Open(c echo.Context) error {
	session, err := h.browseManager.Open(c.Request().Context(), c.Param("gameId"))
	if err != nil {
		return response.Error(c, err)
	}

	h.bindUser(c, session)

	game := session.Game()
	return response.Success(c, browseResponse{
		SessionID: session.ID(),
		GameID:    game.ID,
		GameName:  game.Name,
		CanCreate: session.CanCreate(),
		Items:     guideCards(session, session.Visible()),
		HasMore:   session.HasMore(),
	})
}

func (h *BrowseHandler) LoadMore(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	items, err := session.LoadPage(c.Request().Context(), false)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Page(c, guideCards(session, items), session.HasMore())
}

func (h *BrowseHandler) Search(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	items := session.SearchNow(c.QueryParam("q"))
	return response.Page(c, guideCards(session, items), session.HasMore())
}

func (h *BrowseHandler) Sort(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	items := session.SetSort(usecase.SortCriterion(c.QueryParam("by")))
	return response.Page(c, guideCards(session, items), session.HasMore())
}

func (h *BrowseHandler) ToggleFavorite(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}
	h.bindUser(c, session)

	favorited, err := session.ToggleFavorite(c.Request().Context(), c.Param("guideId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"is_favorite": favorited})
}

func (h *BrowseHandler) Like(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}
	h.bindUser(c, session)

	count, err := session.Like(c.Request().Context(), c.Param("guideId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"likes": count})
}

type createGuideRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (h *BrowseHandler) CreateGuide(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}
	h.bindUser(c, session)

	var req createGuideRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	guide, err := session.CreateGuide(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, guide)
}

// Cards renders the current view as an HTML fragment for direct
// insertion into the guide list container.
func (h *BrowseHandler) Cards(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return response.Error(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return view.RenderGuideCards(c.Response(), guideCards(session, session.Visible()))
}

func (h *BrowseHandler) Close(c echo.Context) error {
	h.browseManager.Close(c.Param("id"))
	return response.Success(c, map[string]string{
		"message": "Session closed",
	})
}

func (h *BrowseHandler) session(c echo.Context) (*usecase.BrowseSession, error) {
	session, ok := h.browseManager.Get(c.Param("id"))
	if !ok {
		return nil, errors.NotFound("Browse session", nil)
	}
	return session, nil
}

// bindUser attaches a per-request authenticated user to the session.
// Requests without a token leave the session on the shared auth stream.
func (h *BrowseHandler) bindUser(c echo.Context, session *usecase.BrowseSession) {
	if uid, ok := c.Get("uid").(string); ok && uid != "" {
		session.SetUser(c.Request().Context(), uid)
	}
}

func guideCards(session *usecase.BrowseSession, items []usecase.GuideItem) []view.GuideCard {
	gameName := ""
	if game := session.Game(); game != nil {
		gameName = game.Name
	}

	now := time.Now()
	cards := make([]view.GuideCard, 0, len(items))
	for _, item := range items {
		card := view.NewGuideCard(item.Guide, item.IsFavorite, item.Liked, now)
		card.GameName = gameName
		cards = append(cards, card)
	}
	return cards
}
