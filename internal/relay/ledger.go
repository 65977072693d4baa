package relay

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bjo163/pairlink/internal/domain"
	"github.com/bjo163/pairlink/pkg/common"
	"github.com/bjo163/pairlink/pkg/metrics"
)

const (
	defaultHistoryLimit = 50
)

// Ledger records and serves the durable message history of a pairing.
type Ledger struct {
	messages    MessageRepository
	prefs       PreferenceRepository
	maxPageSize int
}

func NewLedger(messages MessageRepository, prefs PreferenceRepository, maxPageSize int) *Ledger {
	if maxPageSize <= 0 {
		maxPageSize = 200
	}
	return &Ledger{messages: messages, prefs: prefs, maxPageSize: maxPageSize}
}

// Append records a history entry. History is best-effort relative to
// delivery: a failed insert is logged and swallowed so a store hiccup never
// blocks the notification itself.
func (s *Ledger) Append(ctx context.Context, pairID int64, senderEndpoint, kind, emotion, imageURL string) {
	msg := &domain.Message{
		ID:             common.UUIDint64(),
		PairId:         pairID,
		SenderEndpoint: senderEndpoint,
		Kind:           kind,
		Emotion:        emotion,
		ImageUrl:       imageURL,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		zap.L().Error("history append failed",
			zap.Int64("pair_id", pairID),
			zap.String("kind", kind),
			zap.Error(err))
		return
	}
	metrics.IncrCounter(metrics.HistoryAppended, 1)
}

// HistoryEntry is one page item, shaped for the client.
type HistoryEntry struct {
	ID         int64     `json:"id,string"`
	Type       string    `json:"type"`
	Emotion    string    `json:"emotion,omitempty"`
	ImageUrl   string    `json:"imageUrl,omitempty"`
	SenderName string    `json:"senderName"`
	IsMine     bool      `json:"isMine"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryPage is one page of history plus the continuation hint.
type HistoryPage struct {
	Messages []HistoryEntry `json:"messages"`
	HasMore  bool           `json:"hasMore"`
}

// Read returns a newest-first page of history. Sender names are resolved in
// one batch from current preferences, so a rename applies retroactively to
// old entries. HasMore is the full-page heuristic: a final page whose size
// equals the limit yields one extra empty fetch, which is acceptable.
func (s *Ledger) Read(ctx context.Context, pairID int64, requesterEndpoint string, limit, offset int) (*HistoryPage, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	msgs, err := s.messages.ListByPairing(ctx, pairID, limit, offset)
	if err != nil {
		return nil, Dependency("read history", err)
	}

	names := s.resolveNames(ctx, msgs)

	entries := make([]HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		name := names[m.SenderEndpoint]
		if name == "" {
			name = defaultSenderName
		}
		entries = append(entries, HistoryEntry{
			ID:         m.ID,
			Type:       m.Kind,
			Emotion:    m.Emotion,
			ImageUrl:   m.ImageUrl,
			SenderName: name,
			// An anonymous requester owns nothing, even rows whose
			// sender endpoint is also empty.
			IsMine: requesterEndpoint != "" && m.SenderEndpoint == requesterEndpoint,
			CreatedAt:  m.CreatedAt,
		})
	}

	return &HistoryPage{
		Messages: entries,
		HasMore:  len(msgs) == limit,
	}, nil
}

// resolveNames fetches display names for the distinct sender endpoints of a
// page. Resolution failures degrade to the placeholder name.
func (s *Ledger) resolveNames(ctx context.Context, msgs []*domain.Message) map[string]string {
	seen := map[string]bool{}
	endpoints := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.SenderEndpoint == "" || seen[m.SenderEndpoint] {
			continue
		}
		seen[m.SenderEndpoint] = true
		endpoints = append(endpoints, m.SenderEndpoint)
	}

	names := map[string]string{}
	prefs, err := s.prefs.ListByEndpoints(ctx, endpoints)
	if err != nil {
		zap.L().Warn("sender name lookup failed", zap.Error(err))
		return names
	}
	for _, p := range prefs {
		names[p.Endpoint] = p.DisplayName
	}
	return names
}
