package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bjo163/pairlink/internal/relay"
)

type sendTapRequest struct {
	PairId         interface{} `json:"pairId"`
	Emotion        string      `json:"emotion"`
	SenderEndpoint string      `json:"senderEndpoint"`
}

type sendImageRequest struct {
	PairId         interface{} `json:"pairId"`
	ImageUrl       string      `json:"imageUrl"`
	SenderEndpoint string      `json:"senderEndpoint"`
}

type sendResponse struct {
	Message string `json:"message"`
	Sent    int    `json:"sent"`
}

func (h *Handler) sendTap(c echo.Context) error {
	var req sendTapRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.dispatcher.SendEmotion(c.Request().Context(),
		parsePairID(req.PairId), req.SenderEndpoint, req.Emotion)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sendResult(result))
}

func (h *Handler) sendImage(c echo.Context) error {
	var req sendImageRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.dispatcher.SendImage(c.Request().Context(),
		parsePairID(req.PairId), req.SenderEndpoint, req.ImageUrl)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sendResult(result))
}

// sendResult phrases the outcome for the client. The distinction between "no
// partner yet" and "partner unreachable" drives different UI hints.
func sendResult(r *relay.DispatchResult) sendResponse {
	switch {
	case r.Recipients == 0:
		return sendResponse{Message: "Partner not connected yet", Sent: 0}
	case r.Sent == 0:
		return sendResponse{Message: "Partner may be offline", Sent: 0}
	default:
		return sendResponse{Message: "Notification sent", Sent: r.Sent}
	}
}
