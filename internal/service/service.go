package service

import (
	"context"

	"heatman/internal/logger"
	"heatman/internal/models"
	"heatman/internal/repository"
)

// MetricSource provides the current room reading.
type MetricSource interface {
	FetchReadings(ctx context.Context) (models.Reading, error)
}

// PresenceSource reports on the companion computer. LockStatus never fails.
type PresenceSource interface {
	PoweredOn(ctx context.Context) (bool, error)
	LockStatus(ctx context.Context) models.LockStatus
}

// Actuator reads and switches the heater output.
type Actuator interface {
	QueryPower(ctx context.Context) (bool, error)
	SetPower(ctx context.Context, on bool) error
}

// TickObserver receives every tick outcome, e.g. for metrics.
type TickObserver interface {
	ObserveTick(rep models.TickReport)
	SetAvailable(available bool)
}

// Heater serves the config API: live status and configuration replacement.
type Heater interface {
	Status(ctx context.Context, includeConfig bool) (models.HeaterStatus, error)
	Config() models.HeaterConfig
	UpdateConfig(ctx context.Context, cfg models.HeaterConfig) (models.HeaterConfig, error)
}

// Controller exposes a read-only view of the shared controller state.
type Controller interface {
	Snapshot() models.Snapshot
}

// Reconciliation runs the control loop. Trigger requests an out-of-band tick.
type Reconciliation interface {
	Run(ctx context.Context)
	Trigger()
}

// Service aggregates the sub-services used by the HTTP layer and main.
type Service struct {
	Heater
	Controller
	Reconciliation
}

// Deps are the remote collaborators of the controller.
type Deps struct {
	Metrics  MetricSource
	Presence PresenceSource
	Plug     Actuator
	Observer TickObserver // optional
}

// NewService wires the shared state, the reconciler and the heater API service.
func NewService(repos *repository.Repository, state *ControllerState, deps Deps, opts ReconcilerOptions, log *logger.Logger) *Service {
	rec := NewReconciler(state, deps, opts, log.Named("reconciler"))
	return &Service{
		Heater:         NewHeaterService(repos.Config, state, deps.Metrics, deps.Plug, rec, log.Named("heater")),
		Controller:     state,
		Reconciliation: rec,
	}
}
