// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/larder/internal/adapters/checksum"
	_ "go.trai.ch/larder/internal/adapters/codec"
	_ "go.trai.ch/larder/internal/adapters/config"
	_ "go.trai.ch/larder/internal/adapters/gateway"
	_ "go.trai.ch/larder/internal/adapters/inventory"
	_ "go.trai.ch/larder/internal/adapters/logger"
	_ "go.trai.ch/larder/internal/adapters/metrics"
	// Register app and engine nodes.
	_ "go.trai.ch/larder/internal/app"
	_ "go.trai.ch/larder/internal/engine/gc"
	_ "go.trai.ch/larder/internal/engine/hash"
)
