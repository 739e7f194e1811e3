package checksum

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/core/ports"
)

// NodeID is the unique identifier for the checksum validator Graft node.
const NodeID graft.ID = "adapter.checksum"

func init() {
	graft.Register(graft.Node[ports.ChecksumValidator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ChecksumValidator, error) {
			return NewValidator(), nil
		},
	})
}
