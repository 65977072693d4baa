package relay

import (
	"context"
)

// Monitor answers pairing status queries.
type Monitor struct {
	registry  *Registry
	directory *Directory
}

func NewMonitor(registry *Registry, directory *Directory) *Monitor {
	return &Monitor{registry: registry, directory: directory}
}

// Status is the connection snapshot for one pairing.
type Status struct {
	PairCode         string `json:"pairCode"`
	DeviceCount      int64  `json:"deviceCount"`
	PartnerConnected bool   `json:"partnerConnected"`
}

// Status reports whether the partner device has registered. Two or more
// subscriptions means both sides are connected; a device re-registering under
// a fresh endpoint can briefly push the count above two until the sweep
// catches up.
func (s *Monitor) Status(ctx context.Context, pairID int64) (*Status, error) {
	pairing, err := s.registry.Get(ctx, pairID)
	if err != nil {
		return nil, err
	}

	count, err := s.directory.Count(ctx, pairID)
	if err != nil {
		return nil, err
	}

	return &Status{
		PairCode:         pairing.PairCode,
		DeviceCount:      count,
		PartnerConnected: count >= 2,
	}, nil
}
