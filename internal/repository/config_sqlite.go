package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"heatman/internal/models"
)

type ConfigSQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewConfigSQLite(db *sql.DB) *ConfigSQLite {
	return &ConfigSQLite{db: db, now: time.Now}
}

var _ ConfigRepo = (*ConfigSQLite)(nil)

const (
	heaterConfigRowID = 1

	upsertHeaterConfigSQL = `
		INSERT INTO heater_config (id, master_switch, force, target_temp, co2_target, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			master_switch=excluded.master_switch,
			force=excluded.force,
			target_temp=excluded.target_temp,
			co2_target=excluded.co2_target,
			updated_at=excluded.updated_at
	`

	selectHeaterConfigSQL = `
		SELECT master_switch, force, target_temp, co2_target
		FROM heater_config WHERE id=?
	`
)

// Save upserts the single heater_config row.
func (r *ConfigSQLite) Save(ctx context.Context, cfg models.HeaterConfig) error {
	var co2 sql.NullInt64
	if cfg.CO2Target != nil {
		co2 = sql.NullInt64{Int64: int64(*cfg.CO2Target), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, upsertHeaterConfigSQL,
		heaterConfigRowID,
		cfg.MasterSwitch,
		cfg.Force,
		cfg.TargetTemp,
		co2,
		r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save heater config: %w", err)
	}
	return nil
}

// Load fetches the heater_config row.
func (r *ConfigSQLite) Load(ctx context.Context) (models.HeaterConfig, bool, error) {
	var (
		cfg models.HeaterConfig
		co2 sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, selectHeaterConfigSQL, heaterConfigRowID).Scan(
		&cfg.MasterSwitch,
		&cfg.Force,
		&cfg.TargetTemp,
		&co2,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HeaterConfig{}, false, nil
		}
		return models.HeaterConfig{}, false, fmt.Errorf("load heater config: %w", err)
	}
	if co2.Valid {
		cfg.CO2Target = models.IntPtr(int(co2.Int64))
	}
	return cfg, true, nil
}
