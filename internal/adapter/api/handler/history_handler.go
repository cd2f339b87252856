package handler

import (
	"github.com/labstack/echo/v4"

	"gamebrain/internal/history"
	"gamebrain/pkg/errors"
	"gamebrain/pkg/response"
)

type HistoryHandler struct {
	store *history.Store
}

func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{
		store: store,
	}
}

type trackRequest struct {
	ID         string `json:"id" validate:"required"`
	Title      string `json:"title" validate:"required"`
	GameName   string `json:"game_name"`
	AuthorName string `json:"author_name"`
}

func (h *HistoryHandler) Track(c echo.Context) error {
	var req trackRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	h.store.Track(req.ID, req.Title, req.GameName, req.AuthorName)

	return response.Success(c, map[string]string{
		"message": "View recorded",
	})
}

func (h *HistoryHandler) List(c echo.Context) error {
	entries := h.store.Entries()
	if entries == nil {
		entries = []history.Entry{}
	}
	return response.Success(c, entries)
}

func (h *HistoryHandler) Clear(c echo.Context) error {
	h.store.Clear()
	return response.Success(c, map[string]string{
		"message": "History cleared",
	})
}
