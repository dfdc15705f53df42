package service

import (
	"context"
	"fmt"
	"sync"

	"heatman/internal/logger"
	"heatman/internal/models"
	"heatman/internal/repository"
)

// HeaterService backs GET / and PATCH /.
type HeaterService struct {
	repo    repository.ConfigRepo
	state   *ControllerState
	metrics MetricSource
	plug    Actuator
	loop    interface{ Trigger() }
	log     *logger.Logger

	// serializes persist + swap so the file and memory agree
	patchMu sync.Mutex
}

func NewHeaterService(repo repository.ConfigRepo, state *ControllerState, metrics MetricSource, plug Actuator, loop interface{ Trigger() }, log *logger.Logger) *HeaterService {
	return &HeaterService{repo: repo, state: state, metrics: metrics, plug: plug, loop: loop, log: log}
}

// Status reads the room and the plug live. No lock is held while doing so.
func (s *HeaterService) Status(ctx context.Context, includeConfig bool) (models.HeaterStatus, error) {
	reading, err := s.metrics.FetchReadings(ctx)
	if err != nil {
		return models.HeaterStatus{}, fmt.Errorf("fetch readings: %w", err)
	}
	on, err := s.plug.QueryPower(ctx)
	if err != nil {
		return models.HeaterStatus{}, fmt.Errorf("query heater: %w", err)
	}

	st := models.HeaterStatus{
		Temperature: reading.Temperature,
		CO2:         reading.CO2,
		IsHeating:   on,
		Available:   s.state.Available(),
	}
	if includeConfig {
		cfg := s.state.Config()
		st.Config = &cfg
	}
	return st, nil
}

func (s *HeaterService) Config() models.HeaterConfig {
	return s.state.Config()
}

// UpdateConfig validates, persists and applies a full configuration, then
// asks the reconciler for an immediate tick. The tick's own failures are
// logged by the reconciler and never fail the update.
func (s *HeaterService) UpdateConfig(ctx context.Context, cfg models.HeaterConfig) (models.HeaterConfig, error) {
	if err := cfg.Validate(); err != nil {
		return models.HeaterConfig{}, err
	}

	s.patchMu.Lock()
	defer s.patchMu.Unlock()

	if err := s.repo.Save(ctx, cfg); err != nil {
		return models.HeaterConfig{}, fmt.Errorf("persist config: %w", err)
	}
	s.state.SetConfig(cfg)

	co2 := "none"
	if cfg.CO2Target != nil {
		co2 = fmt.Sprint(*cfg.CO2Target)
	}
	s.log.Infow("config_updated",
		"master_switch", cfg.MasterSwitch,
		"force", cfg.Force,
		"target_temp", cfg.TargetTemp,
		"co2_target", co2,
	)

	if s.loop != nil {
		s.loop.Trigger()
	}
	return cfg.Clone(), nil
}
