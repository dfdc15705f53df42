package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"heatman/internal/models"
	"heatman/internal/repository"
)

func TestConfigFile_MissingFileUsesDefaults(t *testing.T) {
	repo := repository.NewFileRepository(filepath.Join(t.TempDir(), "heater_config.json")).Config

	_, found, err := repo.Load(context.Background())
	if err != nil || found {
		t.Fatalf("Load() found=%v err=%v", found, err)
	}
	cfg, err := repository.LoadOrDefault(context.Background(), repo)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	def := models.DefaultHeaterConfig()
	if cfg.MasterSwitch != def.MasterSwitch || cfg.TargetTemp != def.TargetTemp || *cfg.CO2Target != *def.CO2Target {
		t.Fatalf("got %+v, want defaults %+v", cfg, def)
	}
}

func TestConfigFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heater_config.json")
	repo := repository.NewConfigFile(path)
	ctx := context.Background()

	want := models.HeaterConfig{MasterSwitch: true, Force: false, TargetTemp: 18, CO2Target: nil}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(raw); got != `{"master_switch":true,"force":false,"target_temp":18,"co2_target":null}` {
		t.Fatalf("unexpected document %s", got)
	}

	got, found, err := repo.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if got.CO2Target != nil || got.TargetTemp != 18 || !got.MasterSwitch {
		t.Fatalf("unexpected config %+v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestConfigFile_PartialDocumentKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heater_config.json")
	if err := os.WriteFile(path, []byte(`{"force":true}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, found, err := repository.NewConfigFile(path).Load(context.Background())
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	def := models.DefaultHeaterConfig()
	if !cfg.Force || cfg.MasterSwitch != def.MasterSwitch || cfg.TargetTemp != def.TargetTemp || cfg.CO2Target == nil {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestConfigFile_InvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"not json":     `{"force":`,
		"out of range": `{"target_temp":400}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "heater_config.json")
			if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, _, err := repository.NewConfigFile(path).Load(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if name == "out of range" && !errors.Is(err, models.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
