package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the logger Graft node.
	NodeID graft.ID = "adapter.logger"
	// FilterNodeID is the unique identifier for the event filter Graft node.
	FilterNodeID graft.ID = "adapter.logger.filter"
)

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.EventFilter]{
		ID:        FilterNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.EventFilter, error) {
			return NewCategoryFilter(), nil
		},
	})
}
