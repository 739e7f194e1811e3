package gateway

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/checksum"
	"go.trai.ch/larder/internal/adapters/codec"
	"go.trai.ch/larder/internal/adapters/inventory"
	"go.trai.ch/larder/internal/adapters/logger"
	"go.trai.ch/larder/internal/adapters/metrics"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/larder/internal/engine/hash"
)

const (
	StoreNodeID graft.ID = "adapter.gateway.store"
	CacheNodeID graft.ID = "adapter.gateway.cache"

	// Collaborator nodes are registered by the embedding application
	// before resolving a gateway.
	FetcherNodeID  graft.ID = "collaborator.fetcher"
	LoaderNodeID   graft.ID = "collaborator.loader"
	PackagesNodeID graft.ID = "collaborator.packages"
)

func init() {
	graft.Register(graft.Node[*StoreGateway]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			inventory.NodeID,
			hash.NodeID,
			checksum.NodeID,
			FetcherNodeID,
			logger.NodeID,
			logger.FilterNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*StoreGateway, error) {
			inv, err := graft.Dep[ports.Inventory](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.RecipeHasher](ctx)
			if err != nil {
				return nil, err
			}
			validator, err := graft.Dep[ports.ChecksumValidator](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.ArtifactFetcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			filter, err := graft.Dep[ports.EventFilter](ctx)
			if err != nil {
				return nil, err
			}
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(inv, hasher, validator, fetcher, log, filter, m), nil
		},
	})

	graft.Register(graft.Node[*CacheGateway]{
		ID:        CacheNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			inventory.NodeID,
			hash.NodeID,
			codec.NodeID,
			LoaderNodeID,
			PackagesNodeID,
			logger.NodeID,
			logger.FilterNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*CacheGateway, error) {
			inv, err := graft.Dep[ports.Inventory](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.RecipeHasher](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ValueLoader](ctx)
			if err != nil {
				return nil, err
			}
			cdc, err := graft.Dep[*codec.Codec](ctx)
			if err != nil {
				return nil, err
			}
			packages, err := graft.Dep[ports.PackageResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			filter, err := graft.Dep[ports.EventFilter](ctx)
			if err != nil {
				return nil, err
			}
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			return NewCache(inv, hasher, loader, cdc, packages, log, filter, m), nil
		},
	})
}
