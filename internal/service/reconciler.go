package service

import (
	"context"
	"fmt"
	"time"

	"heatman/internal/logger"
	"heatman/internal/models"
	"heatman/internal/policy"

	"github.com/google/uuid"
)

// DefaultInterval is the fixed period between ticks.
const DefaultInterval = 15 * time.Second

type ReconcilerOptions struct {
	Interval time.Duration
	// ProbeWhenForced keeps reading metrics and presence while force is on.
	ProbeWhenForced bool
}

// Reconciler keeps the heater output in line with the policy.
type Reconciler struct {
	state    *ControllerState
	metrics  MetricSource
	presence PresenceSource
	plug     Actuator
	observer TickObserver
	log      *logger.Logger

	interval        time.Duration
	probeWhenForced bool
	trigger         chan struct{}
	now             func() time.Time
}

func NewReconciler(state *ControllerState, deps Deps, opts ReconcilerOptions, log *logger.Logger) *Reconciler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Reconciler{
		state:           state,
		metrics:         deps.Metrics,
		presence:        deps.Presence,
		plug:            deps.Plug,
		observer:        deps.Observer,
		log:             log,
		interval:        opts.Interval,
		probeWhenForced: opts.ProbeWhenForced,
		trigger:         make(chan struct{}, 1),
		now:             time.Now,
	}
}

// Run ticks once immediately and then on every interval until ctx is
// canceled. Ticks never overlap: triggers and timer ticks arriving during a
// tick are coalesced.
func (r *Reconciler) Run(ctx context.Context) {
	r.log.Infow("reconciler_started", "interval", r.interval, "probe_when_forced", r.probeWhenForced)

	t := time.NewTicker(r.interval)
	defer t.Stop()

	r.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			r.log.Infow("reconciler_stopped")
			return
		case <-t.C:
			r.Tick(ctx)
		case <-r.trigger:
			r.Tick(ctx)
		}
	}
}

// Trigger asks Run for an immediate tick without waiting for the timer.
func (r *Reconciler) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Tick runs one reconciliation pass and updates availability. A failure
// aborts the pass and is only logged.
func (r *Reconciler) Tick(ctx context.Context) models.TickReport {
	tickID := uuid.NewString()
	cfg := r.state.Config()

	rep, err := r.reconcile(ctx, tickID, cfg)
	rep.TickID = tickID
	rep.At = r.now().UTC()

	available := err == nil
	if err != nil {
		rep.Failed = true
		r.log.Warnw("tick_failed", "tick_id", tickID, "err", err)
	}

	if r.state.Record(rep, available) {
		if available {
			r.log.Infow("availability_changed", "available", true, "tick_id", tickID)
		} else {
			r.log.Warnw("availability_changed", "available", false, "tick_id", tickID)
		}
	}
	if r.observer != nil {
		r.observer.ObserveTick(rep)
		r.observer.SetAvailable(available)
	}
	return rep
}

func (r *Reconciler) reconcile(ctx context.Context, tickID string, cfg models.HeaterConfig) (models.TickReport, error) {
	var rep models.TickReport

	if !cfg.MasterSwitch {
		rep.Skipped = true
		return rep, nil
	}

	if cfg.Force && !r.probeWhenForced {
		rep.Desired = true
	} else {
		reading, err := r.metrics.FetchReadings(ctx)
		if err != nil {
			return rep, fmt.Errorf("fetch readings: %w", err)
		}
		rep.Reading = &reading

		poweredOn, err := r.presence.PoweredOn(ctx)
		if err != nil {
			return rep, fmt.Errorf("liveness probe: %w", err)
		}
		rep.PoweredOn = poweredOn
		rep.Lock = r.presence.LockStatus(ctx)
		rep.Desired = policy.Decide(cfg, reading, poweredOn, rep.Lock)
	}

	observed, err := r.plug.QueryPower(ctx)
	if err != nil {
		return rep, fmt.Errorf("query heater: %w", err)
	}
	rep.Observed = observed
	if observed == rep.Desired {
		return rep, nil
	}

	if err := r.plug.SetPower(ctx, rep.Desired); err != nil {
		return rep, fmt.Errorf("switch heater: %w", err)
	}
	rep.Switched = true
	r.log.Infow("heater_switched",
		"tick_id", tickID,
		"on", rep.Desired,
		"force", cfg.Force,
		"powered_on", rep.PoweredOn,
		"lock", rep.Lock.String(),
	)
	return rep, nil
}
