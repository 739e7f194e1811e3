package codec

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the value codec Graft node.
const NodeID graft.ID = "adapter.codec"

func init() {
	graft.Register(graft.Node[*Codec]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Codec, error) {
			return New()
		},
	})
}
