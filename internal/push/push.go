// Package push abstracts the web push transport so the dispatcher can be
// exercised against fakes and the delivery classification stays in one place.
package push

import (
	"context"

	"github.com/bjo163/pairlink/internal/domain"
)

// Payload is the notification body delivered to the client service worker.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	Image string `json:"image,omitempty"`
	Data  Data   `json:"data"`
}

// Data is the kind-specific part of the payload.
type Data struct {
	Type     string `json:"type"`
	Emotion  string `json:"emotion,omitempty"`
	ImageUrl string `json:"imageUrl,omitempty"`
}

// Outcome classifies a single delivery attempt.
type Outcome int

const (
	// Delivered means the push service accepted the notification.
	Delivered Outcome = iota
	// Transient means delivery failed but the endpoint may recover;
	// the subscription is left intact and no retry is attempted here.
	Transient
	// Gone means the push service reported the endpoint no longer exists;
	// the subscription must be pruned.
	Gone
)

// Result is the outcome of one delivery attempt.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Err        error
}

// Transport delivers a payload to a single subscription endpoint.
type Transport interface {
	Send(ctx context.Context, sub *domain.Subscription, payload *Payload) Result
}
