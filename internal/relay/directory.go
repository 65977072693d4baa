package relay

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bjo163/pairlink/internal/domain"
	"github.com/bjo163/pairlink/pkg/common"
	"github.com/bjo163/pairlink/pkg/metrics"
)

// Directory manages push registrations for paired devices.
type Directory struct {
	pairings PairingRepository
	subs     SubscriptionRepository
}

func NewDirectory(pairings PairingRepository, subs SubscriptionRepository) *Directory {
	return &Directory{pairings: pairings, subs: subs}
}

// SubscribeInput carries the browser PushSubscription fields.
type SubscribeInput struct {
	PairID    int64
	Endpoint  string
	P256dh    string
	Auth      string
	ExpiresAt *time.Time
}

// Subscribe registers a device endpoint under a pairing. Re-subscription with
// the same endpoint replaces the stored keys; a device that joins a second
// pairing is silently moved to it.
func (s *Directory) Subscribe(ctx context.Context, in SubscribeInput) error {
	if in.PairID == 0 || in.Endpoint == "" || in.P256dh == "" || in.Auth == "" {
		return Validationf("Missing required fields")
	}

	if _, err := s.pairings.GetByID(ctx, in.PairID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Pair")
		}
		return Dependency("lookup pairing", err)
	}

	sub := &domain.Subscription{
		ID:        common.UUIDint64(),
		PairId:    in.PairID,
		Endpoint:  in.Endpoint,
		P256dh:    in.P256dh,
		Auth:      in.Auth,
		ExpiresAt: in.ExpiresAt,
	}
	if err := s.subs.Upsert(ctx, sub); err != nil {
		return Dependency("save subscription", err)
	}

	zap.L().Info("subscription saved", zap.Int64("pair_id", in.PairID))
	return nil
}

// Count returns the number of devices registered under a pairing.
func (s *Directory) Count(ctx context.Context, pairID int64) (int64, error) {
	count, err := s.subs.CountByPairing(ctx, pairID)
	if err != nil {
		return 0, Dependency("count subscriptions", err)
	}
	return count, nil
}

// Recipients lists a pairing's subscriptions excluding the sender's endpoint.
func (s *Directory) Recipients(ctx context.Context, pairID int64, senderEndpoint string) ([]*domain.Subscription, error) {
	subs, err := s.subs.ListByPairingExcluding(ctx, pairID, senderEndpoint)
	if err != nil {
		return nil, Dependency("list recipients", err)
	}
	return subs, nil
}

// Prune removes dead endpoints in one batch.
func (s *Directory) Prune(ctx context.Context, endpoints []string) {
	if len(endpoints) == 0 {
		return
	}
	if err := s.subs.DeleteByEndpoints(ctx, endpoints); err != nil {
		zap.L().Error("prune subscriptions failed", zap.Error(err))
		return
	}
	metrics.IncrCounter(metrics.PushPruned, int64(len(endpoints)))
	zap.L().Info("pruned dead subscriptions", zap.Int("count", len(endpoints)))
}

// PruneExpired removes subscriptions whose browser-reported expiration time
// has passed. Run periodically from the scheduler.
func (s *Directory) PruneExpired(ctx context.Context) (int64, error) {
	n, err := s.subs.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, Dependency("prune expired subscriptions", err)
	}
	if n > 0 {
		metrics.IncrCounter(metrics.PushPruned, n)
		zap.L().Info("pruned expired subscriptions", zap.Int64("count", n))
	}
	return n, nil
}
