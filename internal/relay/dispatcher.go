package relay

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/bjo163/pairlink/internal/domain"
	"github.com/bjo163/pairlink/internal/push"
	"github.com/bjo163/pairlink/pkg/metrics"
)

// Dispatcher fans a tap or photo out to the partner's registered endpoints,
// records it in the ledger and prunes endpoints the push service reports dead.
type Dispatcher struct {
	directory  *Directory
	ledger     *Ledger
	prefs      PreferenceRepository
	transport  push.Transport
	maxWorkers int
}

func NewDispatcher(directory *Directory, ledger *Ledger,
	prefs PreferenceRepository, transport push.Transport, maxWorkers int) *Dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 8
	}
	return &Dispatcher{
		directory:  directory,
		ledger:     ledger,
		prefs:      prefs,
		transport:  transport,
		maxWorkers: maxWorkers,
	}
}

// DispatchResult reports what a fan-out did. Recipients distinguishes a
// pairing with no partner yet from a partner whose deliveries all failed.
type DispatchResult struct {
	Recipients int
	Sent       int
}

// SendEmotion relays an emotion tap to the partner.
func (s *Dispatcher) SendEmotion(ctx context.Context, pairID int64, senderEndpoint, emotionTag string) (*DispatchResult, error) {
	if pairID == 0 {
		return nil, Validationf("Missing pair ID")
	}
	emotion, ok := LookupEmotion(emotionTag)
	if !ok {
		return nil, Validationf("Invalid emotion type")
	}

	sender := s.senderName(ctx, senderEndpoint)
	payload := &push.Payload{
		Title: fmt.Sprintf("%s %s", sender, emotion.Emoji),
		Body:  fmt.Sprintf("%s %s", sender, emotion.RandomMessage()),
		Icon:  notificationIcon,
		Data: push.Data{
			Type:    domain.MessageKindEmotion,
			Emotion: emotion.Tag,
		},
	}

	s.ledger.Append(ctx, pairID, senderEndpoint, domain.MessageKindEmotion, emotion.Tag, "")
	return s.fanOut(ctx, pairID, senderEndpoint, payload)
}

// SendImage relays a photo notification to the partner. The image itself is
// already uploaded; only its URL travels in the payload.
func (s *Dispatcher) SendImage(ctx context.Context, pairID int64, senderEndpoint, imageURL string) (*DispatchResult, error) {
	if pairID == 0 || imageURL == "" {
		return nil, Validationf("Missing pairId or imageUrl")
	}

	sender := s.senderName(ctx, senderEndpoint)
	payload := &push.Payload{
		Title: fmt.Sprintf("%s sent you a photo \U0001f4f8", sender),
		Body:  "Tap to view",
		Icon:  notificationIcon,
		Image: imageURL,
		Data: push.Data{
			Type:     domain.MessageKindImage,
			ImageUrl: imageURL,
		},
	}

	s.ledger.Append(ctx, pairID, senderEndpoint, domain.MessageKindImage, "", imageURL)
	return s.fanOut(ctx, pairID, senderEndpoint, payload)
}

// fanOut delivers the payload to every recipient concurrently, then prunes
// the endpoints reported gone in a single batch.
func (s *Dispatcher) fanOut(ctx context.Context, pairID int64, senderEndpoint string, payload *push.Payload) (*DispatchResult, error) {
	recipients, err := s.directory.Recipients(ctx, pairID, senderEndpoint)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return &DispatchResult{}, nil
	}

	results := make([]push.Result, len(recipients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)
	for i, sub := range recipients {
		i, sub := i, sub
		g.Go(func() error {
			results[i] = s.transport.Send(gctx, sub, payload)
			return nil
		})
	}
	_ = g.Wait()

	var sent int
	var gone []string
	for i, res := range results {
		switch res.Outcome {
		case push.Delivered:
			sent++
		case push.Gone:
			gone = append(gone, recipients[i].Endpoint)
		case push.Transient:
			metrics.IncrCounter(metrics.PushFailed, 1)
			zap.L().Warn("push delivery failed",
				zap.Int64("pair_id", pairID),
				zap.Int("status", res.StatusCode),
				zap.Error(res.Err))
		}
	}

	s.directory.Prune(ctx, gone)

	if sent > 0 {
		metrics.IncrCounter(metrics.PushSent, int64(sent))
	}
	zap.L().Info("dispatch complete",
		zap.Int64("pair_id", pairID),
		zap.Int("recipients", len(recipients)),
		zap.Int("sent", sent),
		zap.Int("pruned", len(gone)))

	return &DispatchResult{Recipients: len(recipients), Sent: sent}, nil
}

// senderName resolves the sender's display name, falling back to the
// placeholder when unset or unavailable.
func (s *Dispatcher) senderName(ctx context.Context, endpoint string) string {
	if endpoint == "" {
		return defaultSenderName
	}
	pref, err := s.prefs.GetByEndpoint(ctx, endpoint)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Warn("sender name lookup failed", zap.Error(err))
		}
		return defaultSenderName
	}
	if pref.DisplayName == "" {
		return defaultSenderName
	}
	return pref.DisplayName
}
