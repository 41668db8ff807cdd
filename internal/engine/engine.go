package engine

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"pumpjack_simulator/internal/models"
)

// ----------- Simulation constants -----------
const (
	TicksPerHour = 3600 // one tick models one wall-clock second

	spmJitter          = 0.2    // ± strokes/min around target
	crankDegPerMinute  = 360.0  // degrees per stroke
	motorAmpsRipple    = 5.0    // A, peak torque ripple over one stroke
	rodLoadSwing       = 1000.0 // lbs, peak load swing over one stroke
	motorHeatPerTick   = 0.1    // °C, upper bound of motor warm-up per tick
	gearboxHeatPerTick = 0.05   // °C, upper bound of gearbox warm-up per tick
	productionNoiseLow = 0.95
	productionNoiseHi  = 1.05
)

// Source is the random generator the engine draws from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
}

// Engine advances one pumpjack's state tick by tick.
// It is not safe for concurrent use; callers serialize access.
type Engine struct {
	state   models.PumpState
	limits  models.OperatingLimits
	tick    uint64
	rollups int
	rng     Source
}

// Option customizes Engine creation.
type Option func(*Engine)

// WithRand injects the random source, e.g. a seeded generator for replay.
func WithRand(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.rng = src
		}
	}
}

// WithSeed uses a deterministic PCG generator seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = newSeeded(seed)
	}
}

// New returns a stopped engine with default setpoints.
// It fails when the limits table is incomplete or inconsistent.
func New(limits models.OperatingLimits, opts ...Option) (*Engine, error) {
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	e := &Engine{
		state:  models.NewPumpState(),
		limits: limits.Clone(),
		rng:    newSeeded(uint64(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func newSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Start sets the running flag. Calling it while running has no effect.
func (e *Engine) Start() {
	e.state.Status = true
}

// Stop clears the running flag. Calling it while stopped has no effect.
func (e *Engine) Stop() {
	e.state.Status = false
}

// Running reports whether operational fields advance on Tick.
func (e *Engine) Running() bool {
	return e.state.Status
}

// TickCount returns the number of ticks advanced so far.
func (e *Engine) TickCount() uint64 {
	return e.tick
}

// Rollups returns how many hourly performance rollups have run.
func (e *Engine) Rollups() int {
	return e.rollups
}

// State returns a copy of the current state.
func (e *Engine) State() models.PumpState {
	return e.state
}

// Limits returns a copy of the limits table.
func (e *Engine) Limits() models.OperatingLimits {
	return e.limits.Clone()
}

// Tick advances the simulation by one step and returns the resulting snapshot.
// Operational fields move only while running; alarms are re-evaluated every tick
// and performance metrics every TicksPerHour ticks.
func (e *Engine) Tick() models.PumpState {
	e.tick++

	if e.state.Status {
		e.advance()
	}

	e.state = evaluateAlarms(e.state, e.limits)

	if e.tick%TicksPerHour == 0 {
		e.state = computePerformance(e.state, e.tick)
		e.rollups++
	}

	return e.state
}

// advance updates the operational fields of a running pump, in order.
func (e *Engine) advance() {
	st := &e.state

	st.Runtime += 1.0 / TicksPerHour

	st.SPM = math.Max(0, st.TargetSPM+e.uniform(-spmJitter, spmJitter))

	st.CrankAngle = normalizeAngle(float64(e.tick) * st.SPM * crankDegPerMinute / 60)
	phase := math.Sin(st.CrankAngle * math.Pi / 180)

	amps := e.limits[models.QuantityMotorAmps]
	st.MotorAmps = clamp(amps.Mid()+phase*motorAmpsRipple, amps.Min, amps.Max)

	st.MotorTemp = math.Min(st.MotorTemp+e.uniform(0, motorHeatPerTick), e.limits[models.QuantityMotorTemp].Max)
	st.GearboxTemp = math.Min(st.GearboxTemp+e.uniform(0, gearboxHeatPerTick), e.limits[models.QuantityGearboxTemp].Max)

	load := e.limits[models.QuantityRodLoad]
	st.RodLoad = clamp(load.Mid()+phase*rodLoadSwing, load.Min, load.Max)

	st.ProductionRate = e.productionRate()
}

// productionRate ties output to the speed ratio with ±5% noise.
// A zero speed setpoint yields no production instead of dividing by zero.
func (e *Engine) productionRate() float64 {
	st := e.state
	if st.TargetSPM <= 0 {
		return 0
	}
	rate := (st.SPM / st.TargetSPM) * st.TargetProduction * e.uniform(productionNoiseLow, productionNoiseHi)
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*e.rng.Float64()
}

// normalizeAngle maps any finite angle into [0, 360).
func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
