package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/adapters/checksum"  //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/adapters/inventory" //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
	"go.trai.ch/larder/internal/engine/gc"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			inventory.NodeID,
			gc.NodeID,
			checksum.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			inv, err := graft.Dep[ports.Inventory](ctx)
			if err != nil {
				return nil, err
			}
			collector, err := graft.Dep[*gc.Collector](ctx)
			if err != nil {
				return nil, err
			}
			validator, err := graft.Dep[ports.ChecksumValidator](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings, inv, collector, validator, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:      application,
				Logger:   log,
				Settings: settings,
			}, nil
		},
	})
}
