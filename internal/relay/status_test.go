package relay

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorStatus(t *testing.T) {
	r := newTestRepos(t)
	registry := NewRegistry(r.pairings)
	directory := NewDirectory(r.pairings, r.subs)
	monitor := NewMonitor(registry, directory)
	pairing := mustCreatePairing(t, r)

	for devices := 0; devices <= 3; devices++ {
		if devices > 0 {
			subscribeDevice(t, directory, pairing.ID, fmt.Sprintf("https://push/dev%d", devices))
		}

		status, err := monitor.Status(context.Background(), pairing.ID)
		require.NoError(t, err)
		assert.Equal(t, pairing.PairCode, status.PairCode)
		assert.EqualValues(t, devices, status.DeviceCount)
		assert.Equal(t, devices >= 2, status.PartnerConnected)
	}
}

func TestMonitorStatusUnknownPairing(t *testing.T) {
	r := newTestRepos(t)
	monitor := NewMonitor(NewRegistry(r.pairings), NewDirectory(r.pairings, r.subs))

	_, err := monitor.Status(context.Background(), 404404)
	assert.True(t, IsNotFound(err))
}
