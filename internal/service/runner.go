package service

import (
	"sync"
	"time"

	"pumpjack_simulator/internal/engine"
	"pumpjack_simulator/internal/models"
)

const stateRowID = 1

// TickResult is what one locked engine step produced.
type TickResult struct {
	Prev     models.PumpState
	State    models.PumpState
	Tick     uint64
	RolledUp bool
}

// Runner owns the engine. The tick loop, HTTP handlers and the MQTT bridge
// all go through it so the engine is only ever touched under one mutex.
type Runner struct {
	mu  sync.Mutex
	eng *engine.Engine
}

func NewRunner(eng *engine.Engine) *Runner {
	return &Runner{eng: eng}
}

// Tick advances the engine once.
func (r *Runner) Tick() TickResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.eng.State()
	rollups := r.eng.Rollups()
	st := r.eng.Tick()
	return TickResult{
		Prev:     prev,
		State:    st,
		Tick:     r.eng.TickCount(),
		RolledUp: r.eng.Rollups() > rollups,
	}
}

// Start reports whether the pump was stopped before the call.
func (r *Runner) Start() (models.StoredState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := !r.eng.Running()
	r.eng.Start()
	return r.snapshotLocked(), changed
}

// Stop reports whether the pump was running before the call.
func (r *Runner) Stop() (models.StoredState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := r.eng.Running()
	r.eng.Stop()
	return r.snapshotLocked(), changed
}

// SetTarget applies a setpoint and returns its previous value.
func (r *Runner) SetTarget(name string, value float64) (engine.TargetParam, float64, models.StoredState, error) {
	p, err := engine.ParseTargetParam(name)
	if err != nil {
		return "", 0, models.StoredState{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, _ := engine.Fields(r.eng.State())["target_"+string(p)].(float64)
	if err := r.eng.SetTarget(string(p), value); err != nil {
		return p, prev, models.StoredState{}, err
	}
	return p, prev, r.snapshotLocked(), nil
}

// Restore re-applies persisted setpoints and the running flag. Setpoints the
// engine rejects are skipped and returned as errors.
func (r *Runner) Restore(saved models.PumpState) []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fields := engine.Fields(saved)
	var errs []error
	for _, p := range engine.TargetParams() {
		v, _ := fields["target_"+string(p)].(float64)
		if err := r.eng.SetTarget(string(p), v); err != nil {
			errs = append(errs, err)
		}
	}
	if saved.Status {
		r.eng.Start()
	}
	return errs
}

// Snapshot returns the current state as it would be persisted.
func (r *Runner) Snapshot() models.StoredState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Runner) Limits() models.OperatingLimits {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eng.Limits()
}

func (r *Runner) snapshotLocked() models.StoredState {
	return models.StoredState{
		ID:        stateRowID,
		Tick:      r.eng.TickCount(),
		State:     r.eng.State(),
		UpdatedAt: time.Now().UTC(),
	}
}
