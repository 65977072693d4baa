package relay

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bjo163/pairlink/internal/domain"
	"github.com/bjo163/pairlink/pkg/common"
)

const (
	pairCodeLen     = 6
	pairCodeMin     = 100000
	pairCodeSpan    = 900000
	pairCodeRetries = 10
)

// Registry creates pairings and resolves join codes.
type Registry struct {
	pairings PairingRepository
}

func NewRegistry(pairings PairingRepository) *Registry {
	return &Registry{pairings: pairings}
}

// Create mints a new pairing with a unique 6-digit code. On a code collision
// it retries with a fresh code; the candidate is checked before insert and the
// unique index on pair_code backstops the race between check and insert.
func (s *Registry) Create(ctx context.Context) (*domain.Pairing, error) {
	for i := 0; i < pairCodeRetries; i++ {
		code, err := randomPairCode()
		if err != nil {
			return nil, Dependency("generate pair code", err)
		}

		exists, err := s.pairings.CodeExists(ctx, code)
		if err != nil {
			return nil, Dependency("check pair code", err)
		}
		if exists {
			continue
		}

		pairing := &domain.Pairing{
			ID:       common.UUIDint64(),
			PairCode: code,
		}
		if err := s.pairings.Create(ctx, pairing); err != nil {
			// The unique index rejects a code taken between check and
			// insert; re-checking tells that race apart from a real
			// store failure.
			taken, checkErr := s.pairings.CodeExists(ctx, code)
			if checkErr == nil && taken {
				continue
			}
			return nil, Dependency("create pairing", err)
		}

		zap.L().Info("pairing created", zap.Int64("pair_id", pairing.ID))
		return pairing, nil
	}
	return nil, ErrCodeSpaceExhausted
}

// Join resolves a 6-digit code to its pairing. The format check runs before
// any store access.
func (s *Registry) Join(ctx context.Context, code string) (*domain.Pairing, error) {
	if len(code) != pairCodeLen {
		return nil, Validationf("Invalid pair code")
	}

	pairing, err := s.pairings.GetByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Pair code")
	}
	if err != nil {
		return nil, Dependency("lookup pair code", err)
	}
	return pairing, nil
}

// Get resolves a pairing by id.
func (s *Registry) Get(ctx context.Context, pairID int64) (*domain.Pairing, error) {
	pairing, err := s.pairings.GetByID(ctx, pairID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("Pair")
	}
	if err != nil {
		return nil, Dependency("lookup pairing", err)
	}
	return pairing, nil
}

// SetBackground stores the shared background URL on the pairing. Both devices
// see the same background, so it lives on the pairing, not the device.
func (s *Registry) SetBackground(ctx context.Context, pairID int64, url string) error {
	if _, err := s.Get(ctx, pairID); err != nil {
		return err
	}
	if err := s.pairings.UpdateBackground(ctx, pairID, url); err != nil {
		return Dependency("update background", err)
	}
	return nil
}

func randomPairCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(pairCodeSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", pairCodeMin+n.Int64()), nil
}
