package relay

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bjo163/pairlink/internal/domain"
)

// PairingRepository handles database operations for pairing records.
type PairingRepository interface {
	// Create inserts a new pairing
	Create(ctx context.Context, pairing *domain.Pairing) error

	// GetByID retrieves a pairing by ID
	GetByID(ctx context.Context, id int64) (*domain.Pairing, error)

	// GetByCode retrieves a pairing by its 6-digit code
	GetByCode(ctx context.Context, code string) (*domain.Pairing, error)

	// CodeExists reports whether a pairing already holds the code
	CodeExists(ctx context.Context, code string) (bool, error)

	// UpdateBackground sets the pairing's shared background URL
	UpdateBackground(ctx context.Context, id int64, url string) error
}

// SubscriptionRepository handles database operations for push registrations.
type SubscriptionRepository interface {
	// Upsert inserts or updates the row keyed by endpoint
	Upsert(ctx context.Context, sub *domain.Subscription) error

	// CountByPairing returns the number of subscriptions for a pairing
	CountByPairing(ctx context.Context, pairID int64) (int64, error)

	// ListByPairingExcluding returns a pairing's subscriptions minus one endpoint
	ListByPairingExcluding(ctx context.Context, pairID int64, endpoint string) ([]*domain.Subscription, error)

	// DeleteByEndpoints removes all rows whose endpoint is in the set
	DeleteByEndpoints(ctx context.Context, endpoints []string) error

	// DeleteExpired removes rows whose expiration hint has elapsed
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// MessageRepository handles database operations for the history ledger.
type MessageRepository interface {
	// Create appends one history entry
	Create(ctx context.Context, msg *domain.Message) error

	// ListByPairing returns a newest-first page of entries
	ListByPairing(ctx context.Context, pairID int64, limit, offset int) ([]*domain.Message, error)
}

// PreferenceRepository handles database operations for per-device preferences.
type PreferenceRepository interface {
	// Upsert inserts or updates the row keyed by endpoint
	Upsert(ctx context.Context, pref *domain.Preference) error

	// GetByEndpoint retrieves the preference row for one endpoint
	GetByEndpoint(ctx context.Context, endpoint string) (*domain.Preference, error)

	// ListByEndpoints retrieves preference rows for a set of endpoints
	ListByEndpoints(ctx context.Context, endpoints []string) ([]*domain.Preference, error)
}

// GormPairingRepository is the GORM implementation of PairingRepository.
type GormPairingRepository struct {
	db *gorm.DB
}

func NewGormPairingRepository(db *gorm.DB) *GormPairingRepository {
	return &GormPairingRepository{db: db}
}

func (r *GormPairingRepository) Create(ctx context.Context, pairing *domain.Pairing) error {
	return r.db.WithContext(ctx).Create(pairing).Error
}

func (r *GormPairingRepository) GetByID(ctx context.Context, id int64) (*domain.Pairing, error) {
	var pairing domain.Pairing
	err := r.db.WithContext(ctx).First(&pairing, id).Error
	if err != nil {
		return nil, err
	}
	return &pairing, nil
}

func (r *GormPairingRepository) GetByCode(ctx context.Context, code string) (*domain.Pairing, error) {
	var pairing domain.Pairing
	err := r.db.WithContext(ctx).Where("pair_code = ?", code).First(&pairing).Error
	if err != nil {
		return nil, err
	}
	return &pairing, nil
}

func (r *GormPairingRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Pairing{}).
		Where("pair_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *GormPairingRepository) UpdateBackground(ctx context.Context, id int64, url string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Pairing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"background_url": url,
			"updated_at":     time.Now(),
		}).Error
}

// GormSubscriptionRepository is the GORM implementation of SubscriptionRepository.
type GormSubscriptionRepository struct {
	db *gorm.DB
}

func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Upsert resolves the endpoint conflict atomically in the store so concurrent
// re-subscription from the same device cannot duplicate rows.
func (r *GormSubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"pair_id", "p256dh", "auth", "expires_at", "updated_at"}),
		}).
		Create(sub).Error
}

func (r *GormSubscriptionRepository) CountByPairing(ctx context.Context, pairID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("pair_id = ?", pairID).
		Count(&count).Error
	return count, err
}

func (r *GormSubscriptionRepository) ListByPairingExcluding(ctx context.Context, pairID int64, endpoint string) ([]*domain.Subscription, error) {
	var subs []*domain.Subscription
	err := r.db.WithContext(ctx).
		Where("pair_id = ? AND endpoint <> ?", pairID, endpoint).
		Find(&subs).Error
	return subs, err
}

func (r *GormSubscriptionRepository) DeleteByEndpoints(ctx context.Context, endpoints []string) error {
	if len(endpoints) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("endpoint IN ?", endpoints).
		Delete(&domain.Subscription{}).Error
}

func (r *GormSubscriptionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Delete(&domain.Subscription{})
	return res.RowsAffected, res.Error
}

// GormMessageRepository is the GORM implementation of MessageRepository.
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListByPairing orders by created_at with id as tiebreak so pages stay stable
// when entries share a timestamp.
func (r *GormMessageRepository) ListByPairing(ctx context.Context, pairID int64, limit, offset int) ([]*domain.Message, error) {
	var msgs []*domain.Message
	err := r.db.WithContext(ctx).
		Where("pair_id = ?", pairID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

// GormPreferenceRepository is the GORM implementation of PreferenceRepository.
type GormPreferenceRepository struct {
	db *gorm.DB
}

func NewGormPreferenceRepository(db *gorm.DB) *GormPreferenceRepository {
	return &GormPreferenceRepository{db: db}
}

func (r *GormPreferenceRepository) Upsert(ctx context.Context, pref *domain.Preference) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"pair_id", "display_name", "updated_at"}),
		}).
		Create(pref).Error
}

func (r *GormPreferenceRepository) GetByEndpoint(ctx context.Context, endpoint string) (*domain.Preference, error) {
	var pref domain.Preference
	err := r.db.WithContext(ctx).Where("endpoint = ?", endpoint).First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *GormPreferenceRepository) ListByEndpoints(ctx context.Context, endpoints []string) ([]*domain.Preference, error) {
	if len(endpoints) == 0 {
		return nil, nil
	}
	var prefs []*domain.Preference
	err := r.db.WithContext(ctx).Where("endpoint IN ?", endpoints).Find(&prefs).Error
	return prefs, err
}
