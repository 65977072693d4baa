package relay

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bjo163/pairlink/internal/domain"
	"github.com/bjo163/pairlink/pkg/common"
)

// defaultSenderName is what the partner sees when no display name is set.
const defaultSenderName = "Your partner"

// Prefs stores per-device display names and the shared pairing background.
type Prefs struct {
	pairings PairingRepository
	prefs    PreferenceRepository
}

func NewPrefs(pairings PairingRepository, prefs PreferenceRepository) *Prefs {
	return &Prefs{pairings: pairings, prefs: prefs}
}

// Preferences is the read view for one device.
type Preferences struct {
	DisplayName   string `json:"displayName"`
	BackgroundUrl string `json:"backgroundUrl"`
}

// Get returns the device's display name and the pairing's background. Lookup
// failures degrade to empty fields; reading preferences never errors out a
// client that has not set any.
func (s *Prefs) Get(ctx context.Context, pairID int64, endpoint string) *Preferences {
	out := &Preferences{}

	pref, err := s.prefs.GetByEndpoint(ctx, endpoint)
	if err == nil {
		out.DisplayName = pref.DisplayName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Warn("preference lookup failed", zap.Error(err))
	}

	pairing, err := s.pairings.GetByID(ctx, pairID)
	if err == nil {
		out.BackgroundUrl = pairing.BackgroundUrl
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Warn("pairing lookup failed", zap.Error(err))
	}

	return out
}

// SetInput carries a partial update; nil fields are left untouched.
type SetInput struct {
	PairID        int64
	Endpoint      string
	DisplayName   *string
	BackgroundUrl *string
}

// Set applies a partial preference update. The display name is keyed by
// endpoint, the background lives on the pairing and is shared by both
// devices.
func (s *Prefs) Set(ctx context.Context, in SetInput) error {
	if in.PairID == 0 || in.Endpoint == "" {
		return Validationf("Missing pairId or endpoint")
	}

	if _, err := s.pairings.GetByID(ctx, in.PairID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Pair")
		}
		return Dependency("lookup pairing", err)
	}

	if in.DisplayName != nil {
		pref := &domain.Preference{
			ID:          common.UUIDint64(),
			PairId:      in.PairID,
			Endpoint:    in.Endpoint,
			DisplayName: *in.DisplayName,
		}
		if err := s.prefs.Upsert(ctx, pref); err != nil {
			return Dependency("save display name", err)
		}
	}

	if in.BackgroundUrl != nil {
		if err := s.pairings.UpdateBackground(ctx, in.PairID, *in.BackgroundUrl); err != nil {
			return Dependency("save background", err)
		}
	}

	return nil
}
