package repository

import (
	"context"
	"database/sql"

	"heatman/internal/models"
)

// ConfigRepo persists the heater configuration document.
// Load returns found=false when nothing has been stored yet.
type ConfigRepo interface {
	Load(ctx context.Context) (cfg models.HeaterConfig, found bool, err error)
	Save(ctx context.Context, cfg models.HeaterConfig) error
}

type Repository struct {
	Config ConfigRepo
}

// NewFileRepository stores the configuration as a JSON document at path.
func NewFileRepository(path string) *Repository {
	return &Repository{Config: NewConfigFile(path)}
}

// NewSQLiteRepository stores the configuration in the heater_config table.
func NewSQLiteRepository(db *sql.DB) *Repository {
	return &Repository{Config: NewConfigSQLite(db)}
}

// LoadOrDefault loads the stored configuration, falling back to defaults.
func LoadOrDefault(ctx context.Context, repo ConfigRepo) (models.HeaterConfig, error) {
	cfg, found, err := repo.Load(ctx)
	if err != nil {
		return models.HeaterConfig{}, err
	}
	if !found {
		return models.DefaultHeaterConfig(), nil
	}
	return cfg, nil
}
