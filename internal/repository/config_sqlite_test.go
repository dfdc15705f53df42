package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"heatman/internal/models"
	"heatman/internal/repository"
	"heatman/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestConfigSQLite_Save_WritesNullCO2(t *testing.T) {
	mdb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = mdb.Close() }()

	repo := repository.NewConfigSQLite(mdb)
	cfg := models.HeaterConfig{MasterSwitch: true, Force: false, TargetTemp: 19.5}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heater_config")).
		WithArgs(1, true, false, 19.5, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfigSQLite_Save_PropagatesError(t *testing.T) {
	mdb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = mdb.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO heater_config")).
		WillReturnError(errors.New("disk full"))

	err = repository.NewConfigSQLite(mdb).Save(context.Background(), models.DefaultHeaterConfig())
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestConfigSQLite_Load(t *testing.T) {
	mdb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer func() { _ = mdb.Close() }()

	repo := repository.NewConfigSQLite(mdb)
	cols := []string{"master_switch", "force", "target_temp", "co2_target"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM heater_config WHERE id=?")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(true, true, 21.0, 650))

	cfg, found, err := repo.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("Load() = found %v, err %v", found, err)
	}
	if !cfg.MasterSwitch || !cfg.Force || cfg.TargetTemp != 21 || cfg.CO2Target == nil || *cfg.CO2Target != 650 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM heater_config WHERE id=?")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(false, false, 18.0, nil))

	cfg, _, err = repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.CO2Target != nil {
		t.Fatalf("expected nil CO2Target, got %d", *cfg.CO2Target)
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM heater_config WHERE id=?")).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	_, found, err = repo.Load(context.Background())
	if err != nil || found {
		t.Fatalf("expected not found without error, got found=%v err=%v", found, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfigSQLite_RoundTripOnDisk(t *testing.T) {
	sqlDB, err := db.InitDB(filepath.Join(t.TempDir(), "heatman.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := repository.NewSQLiteRepository(sqlDB).Config
	ctx := context.Background()

	got, err := repository.LoadOrDefault(ctx, repo)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if got.TargetTemp != models.DefaultHeaterConfig().TargetTemp {
		t.Fatalf("expected defaults on empty db, got %+v", got)
	}

	want := models.HeaterConfig{MasterSwitch: false, Force: true, TargetTemp: 20.5, CO2Target: models.IntPtr(800)}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want.CO2Target = nil
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	got, found, err := repo.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if got.MasterSwitch || !got.Force || got.TargetTemp != 20.5 || got.CO2Target != nil {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}
