package gc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/inventory" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/larder/internal/core/ports"
)

// NodeID is the unique identifier for the collector Graft node.
const NodeID graft.ID = "engine.gc"

func init() {
	graft.Register(graft.Node[*Collector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			inventory.NodeID,
			logger.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Collector, error) {
			inv, err := graft.Dep[ports.Inventory](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return New(inv, log, m), nil
		},
	})
}
