package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bjo163/pairlink/internal/relay"
)

type subscribeRequest struct {
	PairId       interface{}      `json:"pairId"`
	Subscription pushSubscription `json:"subscription"`
}

// pushSubscription mirrors the browser PushSubscription JSON shape.
// expirationTime arrives as epoch milliseconds or null.
type pushSubscription struct {
	Endpoint       string   `json:"endpoint"`
	ExpirationTime *float64 `json:"expirationTime"`
	Keys           struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (h *Handler) subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	var expiresAt *time.Time
	if req.Subscription.ExpirationTime != nil {
		t := time.UnixMilli(int64(*req.Subscription.ExpirationTime))
		expiresAt = &t
	}

	err := h.directory.Subscribe(c.Request().Context(), relay.SubscribeInput{
		PairID:    parsePairID(req.PairId),
		Endpoint:  req.Subscription.Endpoint,
		P256dh:    req.Subscription.Keys.P256dh,
		Auth:      req.Subscription.Keys.Auth,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Subscription saved"})
}
