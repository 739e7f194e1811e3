package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/core/ports"
)

// NodeID is the unique identifier for the metrics Graft node. The default
// wiring is the no-op sink; embedders that want Prometheus counters
// construct NewPrometheus against their own registry.
const NodeID graft.ID = "adapter.metrics"

func init() {
	graft.Register(graft.Node[ports.Metrics]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Metrics, error) {
			return NewNoop(), nil
		},
	})
}
