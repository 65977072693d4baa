package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) vapidKey(c echo.Context) error {
	if h.pushCfg.VapidPublicKey == "" {
		return errJSON(c, http.StatusInternalServerError, "VAPID key not configured")
	}
	return c.JSON(http.StatusOK, map[string]string{"vapidPublicKey": h.pushCfg.VapidPublicKey})
}
