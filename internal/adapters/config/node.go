package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/larder/internal/core/domain"
)

const (
	LoaderNodeID graft.ID = "adapter.config_loader"
	NodeID       graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[*FileSettingsLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*FileSettingsLoader, error) {
			return NewLoader(), nil
		},
	})

	// Resolved settings for the current working directory.
	graft.Register(graft.Node[*domain.Settings]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Settings, error) {
			loader, err := graft.Dep[*FileSettingsLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return loader.Load(cwd)
		},
	})
}
