package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bjo163/pairlink/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

type testRepos struct {
	pairings PairingRepository
	subs     SubscriptionRepository
	messages MessageRepository
	prefs    PreferenceRepository
}

func newTestRepos(t *testing.T) *testRepos {
	db := newTestDB(t)
	return &testRepos{
		pairings: NewGormPairingRepository(db),
		subs:     NewGormSubscriptionRepository(db),
		messages: NewGormMessageRepository(db),
		prefs:    NewGormPreferenceRepository(db),
	}
}

func mustCreatePairing(t *testing.T, r *testRepos) *domain.Pairing {
	t.Helper()
	pairing, err := NewRegistry(r.pairings).Create(context.Background())
	require.NoError(t, err)
	return pairing
}
