// Package config provides the configuration loader for larder.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/larder/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file searched for upward from the
// working directory.
const DefaultFilename = "larder.yaml"

// DefaultStoreDir is the store directory used when no configuration file
// sets one, relative to the working directory.
const DefaultStoreDir = ".larder"

// FileSettingsLoader implements ports.SettingsLoader using a YAML file.
type FileSettingsLoader struct {
	Filename string
}

// NewLoader creates a loader for the default configuration filename.
func NewLoader() *FileSettingsLoader {
	return &FileSettingsLoader{Filename: DefaultFilename}
}

// Load resolves the settings starting from cwd. The configuration file is
// searched in cwd and its ancestors; when none exists every setting falls
// back to its default. A relative store root is resolved against the
// directory the file was found in, so the same file works from any
// subdirectory.
func (l *FileSettingsLoader) Load(cwd string) (*domain.Settings, error) {
	path, err := discover(cwd, l.Filename)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return &domain.Settings{
			Root: filepath.Join(cwd, DefaultStoreDir),
			GC:   domain.DefaultGCConfig(),
		}, nil
	}
	return LoadFile(path)
}

// LoadFile reads a configuration file from the given path.
func LoadFile(path string) (*domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Larderfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	base := filepath.Dir(path)
	root := file.Store.Root
	if root == "" {
		root = DefaultStoreDir
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(base, root)
	}

	gc := domain.DefaultGCConfig()
	if v := file.Store.GC.AutoGC; v != nil {
		gc.AutoGCIntervalHours = *v
	}
	if v := file.Store.GC.MaxAge; v != nil {
		gc.MaxAgeDays = *v
	}
	if v := file.Store.GC.MaxSize; v != nil {
		gc.MaxSizeBytes = *v
	}
	if v := file.Store.GC.RecencyBeta; v != nil {
		gc.RecencyBeta = *v
	}

	return &domain.Settings{Root: root, GC: gc}, nil
}

// discover walks from dir toward the filesystem root looking for the
// configuration file. Returns "" when no file exists.
func discover(dir, filename string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}
	for {
		candidate := filepath.Join(current, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.Wrap(err, "failed to probe config file")
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}
