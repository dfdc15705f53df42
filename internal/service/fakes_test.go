package service

import (
	"context"
	"errors"
	"sync"

	"heatman/internal/models"
)

var errDown = errors.New("down")

// fakeMetrics is a stub MetricSource.
type fakeMetrics struct {
	reading models.Reading
	err     error
	calls   int
}

func (f *fakeMetrics) FetchReadings(ctx context.Context) (models.Reading, error) {
	f.calls++
	return f.reading, f.err
}

// fakePresence is a stub PresenceSource.
type fakePresence struct {
	on        bool
	onErr     error
	lock      models.LockStatus
	pingCalls int
	lockCalls int
}

func (f *fakePresence) PoweredOn(ctx context.Context) (bool, error) {
	f.pingCalls++
	return f.on, f.onErr
}

func (f *fakePresence) LockStatus(ctx context.Context) models.LockStatus {
	f.lockCalls++
	return f.lock
}

// fakePlug is a stub Actuator. A successful SetPower changes the output so the
// next query sees it, like the real plug.
type fakePlug struct {
	mu         sync.Mutex
	on         bool
	queryErr   error
	setErr     error
	queryCalls int
	sets       []bool
}

func (f *fakePlug) QueryPower(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	return f.on, f.queryErr
}

func (f *fakePlug) SetPower(ctx context.Context, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets = append(f.sets, on)
	if f.setErr != nil {
		return f.setErr
	}
	f.on = on
	return nil
}

func (f *fakePlug) setCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sets)
}

// fakeObserver records what the reconciler reports.
type fakeObserver struct {
	ticks     []models.TickReport
	available []bool
}

func (f *fakeObserver) ObserveTick(rep models.TickReport) { f.ticks = append(f.ticks, rep) }
func (f *fakeObserver) SetAvailable(v bool)               { f.available = append(f.available, v) }

// fakeConfigRepo is an in-memory repository.ConfigRepo.
type fakeConfigRepo struct {
	saved   []models.HeaterConfig
	saveErr error
}

func (f *fakeConfigRepo) Load(ctx context.Context) (models.HeaterConfig, bool, error) {
	if len(f.saved) == 0 {
		return models.HeaterConfig{}, false, nil
	}
	return f.saved[len(f.saved)-1], true, nil
}

func (f *fakeConfigRepo) Save(ctx context.Context, cfg models.HeaterConfig) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, cfg)
	return nil
}

// fakeTrigger counts Trigger calls.
type fakeTrigger struct{ calls int }

func (f *fakeTrigger) Trigger() { f.calls++ }
