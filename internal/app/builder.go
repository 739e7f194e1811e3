package app

import (
	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/larder/internal/core/ports"
)

// Components bundles the resolved application with the dependencies the
// CLI needs direct access to.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings *domain.Settings
}
