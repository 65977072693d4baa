package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bjo163/pairlink/internal/relay"
)

func (h *Handler) getPreferences(c echo.Context) error {
	pairID := parsePairID(c.QueryParam("pairId"))
	endpoint := c.QueryParam("endpoint")
	if pairID == 0 || endpoint == "" {
		return errJSON(c, http.StatusBadRequest, "Missing pairId or endpoint")
	}

	prefs := h.prefs.Get(c.Request().Context(), pairID, endpoint)
	return c.JSON(http.StatusOK, prefs)
}

type setPreferencesRequest struct {
	PairId        interface{} `json:"pairId"`
	Endpoint      string      `json:"endpoint"`
	DisplayName   *string     `json:"displayName"`
	BackgroundUrl *string     `json:"backgroundUrl"`
}

func (h *Handler) setPreferences(c echo.Context) error {
	var req setPreferencesRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	err := h.prefs.Set(c.Request().Context(), relay.SetInput{
		PairID:        parsePairID(req.PairId),
		Endpoint:      req.Endpoint,
		DisplayName:   req.DisplayName,
		BackgroundUrl: req.BackgroundUrl,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
