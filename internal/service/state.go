package service

import (
	"sync"

	"heatman/internal/models"
)

// ControllerState is shared between the reconciler and the HTTP handlers.
// Locks are held only to copy values in or out, never across network calls.
type ControllerState struct {
	mu        sync.RWMutex
	config    models.HeaterConfig
	available bool
	lastTick  *models.TickReport
}

// NewControllerState starts out available with the given configuration.
func NewControllerState(cfg models.HeaterConfig) *ControllerState {
	return &ControllerState{config: cfg.Clone(), available: true}
}

func (s *ControllerState) Config() models.HeaterConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Clone()
}

func (s *ControllerState) SetConfig(cfg models.HeaterConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg.Clone()
}

func (s *ControllerState) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.available
}

// Record stores the tick report and the availability flag and reports
// whether availability changed.
func (s *ControllerState) Record(rep models.TickReport, available bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastTick = &rep
	if s.available == available {
		return false
	}
	s.available = available
	return true
}

func (s *ControllerState) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := models.Snapshot{Config: s.config.Clone(), Available: s.available}
	if s.lastTick != nil {
		rep := *s.lastTick
		snap.LastTick = &rep
	}
	return snap
}
