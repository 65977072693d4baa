package relay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribeDevice(t *testing.T, d *Directory, pairID int64, endpoint string) {
	t.Helper()
	require.NoError(t, d.Subscribe(context.Background(), SubscribeInput{
		PairID:   pairID,
		Endpoint: endpoint,
		P256dh:   "p256dh-" + endpoint,
		Auth:     "auth-" + endpoint,
	}))
}

func TestDirectorySubscribeValidation(t *testing.T) {
	r := newTestRepos(t)
	d := NewDirectory(r.pairings, r.subs)

	cases := []SubscribeInput{
		{},
		{PairID: 1, P256dh: "k", Auth: "a"},
		{PairID: 1, Endpoint: "e", Auth: "a"},
		{PairID: 1, Endpoint: "e", P256dh: "k"},
	}
	for _, in := range cases {
		err := d.Subscribe(context.Background(), in)
		assert.True(t, IsValidation(err), "input %+v", in)
	}
}

func TestDirectorySubscribeUnknownPairing(t *testing.T) {
	r := newTestRepos(t)
	d := NewDirectory(r.pairings, r.subs)

	err := d.Subscribe(context.Background(), SubscribeInput{
		PairID: 12345, Endpoint: "e", P256dh: "k", Auth: "a",
	})
	assert.True(t, IsNotFound(err))
}

func TestDirectoryResubscribeReplacesKeys(t *testing.T) {
	r := newTestRepos(t)
	d := NewDirectory(r.pairings, r.subs)
	pairing := mustCreatePairing(t, r)

	require.NoError(t, d.Subscribe(context.Background(), SubscribeInput{
		PairID: pairing.ID, Endpoint: "https://push/ep1", P256dh: "old-key", Auth: "old-auth",
	}))
	require.NoError(t, d.Subscribe(context.Background(), SubscribeInput{
		PairID: pairing.ID, Endpoint: "https://push/ep1", P256dh: "new-key", Auth: "new-auth",
	}))

	count, err := d.Count(context.Background(), pairing.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	subs, err := r.subs.ListByPairingExcluding(context.Background(), pairing.ID, "other")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "new-key", subs[0].P256dh)
	assert.Equal(t, "new-auth", subs[0].Auth)
}

func TestDirectorySubscribeMovesEndpointBetweenPairings(t *testing.T) {
	r := newTestRepos(t)
	d := NewDirectory(r.pairings, r.subs)
	first := mustCreatePairing(t, r)
	second := mustCreatePairing(t, r)

	subscribeDevice(t, d, first.ID, "https://push/ep1")
	subscribeDevice(t, d, second.ID, "https://push/ep1")

	firstCount, err := d.Count(context.Background(), first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, firstCount)

	secondCount, err := d.Count(context.Background(), second.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, secondCount)
}

func TestDirectoryRecipientsExcludesSender(t *testing.T) {
	r := newTestRepos(t)
	d := NewDirectory(r.pairings, r.subs)
	pairing := mustCreatePairing(t, r)

	subscribeDevice(t, d, pairing.ID, "https://push/sender")
	subscribeDevice(t, d, pairing.ID, "https://push/partner")

	recipients, err := d.Recipients(context.Background(), pairing.ID, "https://push/sender")
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "https://push/partner", recipients[0].Endpoint)
}

func TestDirectoryPrune(t *testing.T) {
	r := newTestRepos(t)
	d := NewDirectory(r.pairings, r.subs)
	pairing := mustCreatePairing(t, r)

	subscribeDevice(t, d, pairing.ID, "https://push/dead")
	subscribeDevice(t, d, pairing.ID, "https://push/alive")

	d.Prune(context.Background(), []string{"https://push/dead"})

	subs, err := r.subs.ListByPairingExcluding(context.Background(), pairing.ID, "")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "https://push/alive", subs[0].Endpoint)
}

func TestDirectoryPruneExpired(t *testing.T) {
	r := newTestRepos(t)
	d := NewDirectory(r.pairings, r.subs)
	pairing := mustCreatePairing(t, r)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	require.NoError(t, d.Subscribe(context.Background(), SubscribeInput{
		PairID: pairing.ID, Endpoint: "https://push/expired",
		P256dh: "k", Auth: "a", ExpiresAt: &past,
	}))
	require.NoError(t, d.Subscribe(context.Background(), SubscribeInput{
		PairID: pairing.ID, Endpoint: "https://push/fresh",
		P256dh: "k", Auth: "a", ExpiresAt: &future,
	}))
	subscribeDevice(t, d, pairing.ID, "https://push/forever")

	n, err := d.PruneExpired(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	count, err := d.Count(context.Background(), pairing.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
