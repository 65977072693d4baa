package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

func (h *Handler) history(c echo.Context) error {
	pairID := parsePairID(c.QueryParam("pairId"))
	if pairID == 0 {
		return errJSON(c, http.StatusBadRequest, "Missing pair ID")
	}

	limit := cast.ToInt(c.QueryParam("limit"))
	offset := cast.ToInt(c.QueryParam("offset"))
	endpoint := c.QueryParam("endpoint")

	page, err := h.ledger.Read(c.Request().Context(), pairID, endpoint, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
