package hash

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the dataset registry Graft node.
	RegistryNodeID graft.ID = "engine.hash.registry"
	// NodeID is the unique identifier for the recipe hasher Graft node.
	NodeID graft.ID = "engine.hash.hasher"
)

func init() {
	// Registry node (concrete type: embedders register datasets on it)
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Registry, error) {
			return NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[ports.RecipeHasher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RegistryNodeID},
		Run: func(ctx context.Context) (ports.RecipeHasher, error) {
			registry, err := graft.Dep[*Registry](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(registry), nil
		},
	})
}
