package ports

import "go.trai.ch/larder/internal/core/domain"

// SettingsLoader defines the interface for loading the store configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=settings_loader.go -destination=mocks/mock_settings_loader.go -package=mocks
type SettingsLoader interface {
	// Load resolves the settings starting from the given working
	// directory, falling back to defaults when no file is found.
	Load(cwd string) (*domain.Settings, error)
}
