package http

import (
	"net/http"
	"strconv"

	"listings-backend/internal/usecase/event"

	"github.com/labstack/echo/v4"
)

type EventHandler struct{ uc *event.Usecase }

func NewEventHandler(uc *event.Usecase) *EventHandler { return &EventHandler{uc: uc} }

// ListEvents serves the agreement journal for one mint:
// GET /events?mint=<hex32>&limit=<n>
func (h *EventHandler) ListEvents(c echo.Context) error {
	mint := c.QueryParam("mint")
	if !reHex32.MatchString(mint) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "mint must be 32-char lowercase hex"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.uc.ListByMint(c.Request().Context(), mint, limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"events": events})
}
