package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type pairResponse struct {
	PairId   string `json:"pairId"`
	PairCode string `json:"pairCode"`
}

func (h *Handler) createPair(c echo.Context) error {
	pairing, err := h.registry.Create(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pairResponse{
		PairId:   strconv.FormatInt(pairing.ID, 10),
		PairCode: pairing.PairCode,
	})
}

type joinPairRequest struct {
	PairCode string `json:"pairCode"`
}

func (h *Handler) joinPair(c echo.Context) error {
	var req joinPairRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	pairing, err := h.registry.Join(c.Request().Context(), req.PairCode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pairResponse{
		PairId:   strconv.FormatInt(pairing.ID, 10),
		PairCode: pairing.PairCode,
	})
}

func (h *Handler) pairStatus(c echo.Context) error {
	pairID := parsePairID(c.QueryParam("pairId"))
	if pairID == 0 {
		return errJSON(c, http.StatusBadRequest, "Missing pair ID")
	}

	status, err := h.monitor.Status(c.Request().Context(), pairID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}
