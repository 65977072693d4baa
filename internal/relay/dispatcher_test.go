package relay

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjo163/pairlink/internal/domain"
	"github.com/bjo163/pairlink/internal/push"
)

// fakeTransport scripts per-endpoint outcomes and records delivered payloads.
type fakeTransport struct {
	mu       sync.Mutex
	outcomes map[string]push.Outcome
	payloads map[string]*push.Payload
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		outcomes: map[string]push.Outcome{},
		payloads: map[string]*push.Payload{},
	}
}

func (f *fakeTransport) Send(ctx context.Context, sub *domain.Subscription, payload *push.Payload) push.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads[sub.Endpoint] = payload
	outcome, ok := f.outcomes[sub.Endpoint]
	if !ok {
		outcome = push.Delivered
	}
	return push.Result{Outcome: outcome}
}

func (f *fakeTransport) payloadFor(endpoint string) *push.Payload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloads[endpoint]
}

type dispatchFixture struct {
	repos      *testRepos
	directory  *Directory
	ledger     *Ledger
	dispatcher *Dispatcher
	transport  *fakeTransport
	pairing    *domain.Pairing
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	r := newTestRepos(t)
	transport := newFakeTransport()
	directory := NewDirectory(r.pairings, r.subs)
	ledger := NewLedger(r.messages, r.prefs, 200)
	return &dispatchFixture{
		repos:      r,
		directory:  directory,
		ledger:     ledger,
		dispatcher: NewDispatcher(directory, ledger, r.prefs, transport, 4),
		transport:  transport,
		pairing:    mustCreatePairing(t, r),
	}
}

func TestDispatcherSendEmotionValidation(t *testing.T) {
	f := newDispatchFixture(t)

	_, err := f.dispatcher.SendEmotion(context.Background(), 0, "ep", "love")
	assert.True(t, IsValidation(err))

	_, err = f.dispatcher.SendEmotion(context.Background(), f.pairing.ID, "ep", "rage")
	assert.True(t, IsValidation(err))

	// Rejected sends leave no history behind.
	page, err := f.ledger.Read(context.Background(), f.pairing.ID, "ep", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
}

func TestDispatcherSendEmotionNoPartner(t *testing.T) {
	f := newDispatchFixture(t)
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/sender")

	result, err := f.dispatcher.SendEmotion(context.Background(), f.pairing.ID, "https://push/sender", "love")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Recipients)
	assert.Equal(t, 0, result.Sent)

	// The tap is still recorded even though nobody received it.
	page, err := f.ledger.Read(context.Background(), f.pairing.ID, "https://push/sender", 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Messages, 1)
}

func TestDispatcherSendEmotionDelivers(t *testing.T) {
	f := newDispatchFixture(t)
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/sender")
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/partner")

	result, err := f.dispatcher.SendEmotion(context.Background(), f.pairing.ID, "https://push/sender", "love")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Recipients)
	assert.Equal(t, 1, result.Sent)

	payload := f.transport.payloadFor("https://push/partner")
	require.NotNil(t, payload)
	assert.Equal(t, domain.MessageKindEmotion, payload.Data.Type)
	assert.Equal(t, "love", payload.Data.Emotion)
	assert.Contains(t, payload.Title, defaultSenderName)

	// The sender's own device never receives the notification.
	assert.Nil(t, f.transport.payloadFor("https://push/sender"))
}

func TestDispatcherUsesSenderDisplayName(t *testing.T) {
	f := newDispatchFixture(t)
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/sender")
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/partner")

	prefs := NewPrefs(f.repos.pairings, f.repos.prefs)
	name := "Ada"
	require.NoError(t, prefs.Set(context.Background(), SetInput{
		PairID: f.pairing.ID, Endpoint: "https://push/sender", DisplayName: &name,
	}))

	_, err := f.dispatcher.SendEmotion(context.Background(), f.pairing.ID, "https://push/sender", "wave")
	require.NoError(t, err)

	payload := f.transport.payloadFor("https://push/partner")
	require.NotNil(t, payload)
	assert.True(t, strings.HasPrefix(payload.Title, "Ada "), "title %q", payload.Title)
	assert.Contains(t, payload.Body, "Ada")
}

func TestDispatcherPrunesGoneEndpoints(t *testing.T) {
	f := newDispatchFixture(t)
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/sender")
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/gone")
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/alive")
	f.transport.outcomes["https://push/gone"] = push.Gone

	result, err := f.dispatcher.SendEmotion(context.Background(), f.pairing.ID, "https://push/sender", "hug")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Recipients)
	assert.Equal(t, 1, result.Sent)

	count, err := f.directory.Count(context.Background(), f.pairing.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	recipients, err := f.directory.Recipients(context.Background(), f.pairing.ID, "https://push/sender")
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "https://push/alive", recipients[0].Endpoint)
}

func TestDispatcherKeepsTransientFailures(t *testing.T) {
	f := newDispatchFixture(t)
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/sender")
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/flaky")
	f.transport.outcomes["https://push/flaky"] = push.Transient

	result, err := f.dispatcher.SendEmotion(context.Background(), f.pairing.ID, "https://push/sender", "moon")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Recipients)
	assert.Equal(t, 0, result.Sent)

	// A transient failure is not a reason to drop the registration.
	count, err := f.directory.Count(context.Background(), f.pairing.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDispatcherSendImage(t *testing.T) {
	f := newDispatchFixture(t)
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/sender")
	subscribeDevice(t, f.directory, f.pairing.ID, "https://push/partner")

	_, err := f.dispatcher.SendImage(context.Background(), f.pairing.ID, "https://push/sender", "")
	assert.True(t, IsValidation(err))

	result, err := f.dispatcher.SendImage(context.Background(), f.pairing.ID, "https://push/sender", "/uploads/messages/1/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)

	payload := f.transport.payloadFor("https://push/partner")
	require.NotNil(t, payload)
	assert.Equal(t, domain.MessageKindImage, payload.Data.Type)
	assert.Equal(t, "/uploads/messages/1/a.jpg", payload.Data.ImageUrl)
	assert.Equal(t, "/uploads/messages/1/a.jpg", payload.Image)

	page, err := f.ledger.Read(context.Background(), f.pairing.ID, "https://push/sender", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, domain.MessageKindImage, page.Messages[0].Type)
	assert.True(t, page.Messages[0].IsMine)
}
