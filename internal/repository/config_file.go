package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"heatman/internal/models"
)

const configFilePerm = 0o644

type ConfigFile struct {
	path string
}

func NewConfigFile(path string) *ConfigFile {
	return &ConfigFile{path: path}
}

var _ ConfigRepo = (*ConfigFile)(nil)

// Load decodes the document over the defaults, so fields missing from an
// older file keep their default value.
func (r *ConfigFile) Load(_ context.Context) (models.HeaterConfig, bool, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.HeaterConfig{}, false, nil
		}
		return models.HeaterConfig{}, false, fmt.Errorf("read config %q: %w", r.path, err)
	}

	cfg := models.DefaultHeaterConfig()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return models.HeaterConfig{}, false, fmt.Errorf("decode config %q: %w", r.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return models.HeaterConfig{}, false, fmt.Errorf("config %q: %w", r.path, err)
	}
	return cfg, true, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target so readers never see a partial document.
func (r *ConfigFile) Save(_ context.Context, cfg models.HeaterConfig) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config in %q: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Chmod(tmpName, configFilePerm); err != nil {
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("replace config %q: %w", r.path, err)
	}
	return nil
}
