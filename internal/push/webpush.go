package push

import (
	"context"
	"io"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	jsoniter "github.com/json-iterator/go"

	"github.com/bjo163/pairlink/config"
	"github.com/bjo163/pairlink/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WebPush sends notifications through the Web Push protocol with VAPID auth.
type WebPush struct {
	cfg config.PushConfig
}

func NewWebPush(cfg config.PushConfig) *WebPush {
	if cfg.TTL <= 0 {
		cfg.TTL = 86400
	}
	return &WebPush{cfg: cfg}
}

var _ Transport = (*WebPush)(nil)

func (w *WebPush) Send(ctx context.Context, sub *domain.Subscription, payload *Payload) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Outcome: Transient, Err: err}
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      w.cfg.Subscriber,
		VAPIDPublicKey:  w.cfg.VapidPublicKey,
		VAPIDPrivateKey: w.cfg.VapidPrivateKey,
		TTL:             w.cfg.TTL,
	})
	if err != nil {
		// Network-level failure: the endpoint may still be alive.
		return Result{Outcome: Transient, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return Result{Outcome: Classify(resp.StatusCode), StatusCode: resp.StatusCode}
}

// Classify maps a push service status code to a delivery outcome. 404 and 410
// are the permanent set: the endpoint is gone and must be pruned.
func Classify(status int) Outcome {
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return Gone
	case status >= 200 && status < 300:
		return Delivered
	default:
		return Transient
	}
}
