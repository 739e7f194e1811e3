package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/larder/internal/adapters/config"
	"go.trai.ch/larder/internal/core/domain"
)

func TestLoad_Success(t *testing.T) {
	content := `
version: "1"
store:
  root: cache
  gc:
    auto_gc: 12
    max_age: 7
    max_size: 1073741824
    recency_beta: -0.5
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "larder.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	settings, err := config.LoadFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "cache"), settings.Root)
	assert.Equal(t, 12.0, settings.GC.AutoGCIntervalHours)
	assert.Equal(t, 7.0, settings.GC.MaxAgeDays)
	assert.Equal(t, int64(1<<30), settings.GC.MaxSizeBytes)
	assert.Equal(t, -0.5, settings.GC.RecencyBeta)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	tmpDir := t.TempDir()

	loader := config.NewLoader()
	settings, err := loader.Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, config.DefaultStoreDir), settings.Root)
	assert.Equal(t, domain.DefaultGCConfig(), settings.GC)
}

func TestLoad_AbsentGCKeysKeepDefaults(t *testing.T) {
	// An absent key keeps the default while an explicit zero disables
	// the sweep. The pointer DTO fields make the two distinguishable.
	content := `
version: "1"
store:
  gc:
    max_age: 0
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "larder.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	settings, err := config.LoadFile(configPath)
	require.NoError(t, err)

	defaults := domain.DefaultGCConfig()
	assert.Equal(t, 0.0, settings.GC.MaxAgeDays)
	assert.Equal(t, defaults.AutoGCIntervalHours, settings.GC.AutoGCIntervalHours)
	assert.Equal(t, defaults.MaxSizeBytes, settings.GC.MaxSizeBytes)
	assert.Equal(t, defaults.RecencyBeta, settings.GC.RecencyBeta)
	assert.False(t, settings.GC.MaxAge() > 0)
}

func TestLoad_UpwardDiscovery(t *testing.T) {
	// Structure:
	// root/
	//   larder.yaml (store root: shared)
	//   pkg/
	//     sub/  (cwd for the load)
	tmpDir := t.TempDir()
	content := `
version: "1"
store:
  root: shared
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "larder.yaml"), []byte(content), 0o600))
	cwd := filepath.Join(tmpDir, "pkg", "sub")
	require.NoError(t, os.MkdirAll(cwd, 0o750))

	loader := config.NewLoader()
	settings, err := loader.Load(cwd)
	require.NoError(t, err)

	// The relative root resolves against the file's directory, so every
	// subdirectory shares one store.
	assert.Equal(t, filepath.Join(tmpDir, "shared"), settings.Root)
}

func TestLoad_NearestFileWins(t *testing.T) {
	tmpDir := t.TempDir()
	outer := `
version: "1"
store:
  root: outer
`
	inner := `
version: "1"
store:
  root: inner
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "larder.yaml"), []byte(outer), 0o600))
	nested := filepath.Join(tmpDir, "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "larder.yaml"), []byte(inner), 0o600))

	loader := config.NewLoader()
	settings, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "inner"), settings.Root)
}

func TestLoad_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "larder.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("store: [unclosed"), 0o600))

	_, err := config.LoadFile(configPath)
	assert.Error(t, err)
}
