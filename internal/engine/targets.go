package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"pumpjack_simulator/internal/models"
)

// TargetParam names a settable setpoint.
type TargetParam string

const (
	TargetSPM        TargetParam = "spm"
	TargetProduction TargetParam = "production"
	TargetRuntime    TargetParam = "runtime"
)

const maxRuntimeHoursPerDay = 24.0

var (
	ErrInvalidParameter = errors.New("invalid target parameter")
	ErrInvalidValue     = errors.New("invalid target value")
)

var targetSetters = map[TargetParam]func(*models.PumpState, float64){
	TargetSPM:        func(st *models.PumpState, v float64) { st.TargetSPM = v },
	TargetProduction: func(st *models.PumpState, v float64) { st.TargetProduction = v },
	TargetRuntime:    func(st *models.PumpState, v float64) { st.TargetRuntime = v },
}

// TargetParams lists every settable parameter.
func TargetParams() []TargetParam {
	return []TargetParam{TargetSPM, TargetProduction, TargetRuntime}
}

// ParseTargetParam accepts "spm", "production", "runtime", optionally prefixed
// with "target_", case-insensitively.
func ParseTargetParam(name string) (TargetParam, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "target_")
	p := TargetParam(n)
	if _, ok := targetSetters[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidParameter, name)
	}
	return p, nil
}

// SetTarget updates one setpoint. Unknown names fail with ErrInvalidParameter and
// negative or non-finite values with ErrInvalidValue; the state is left untouched
// on error. Zero is accepted: the tick update guards the divisions it feeds.
func (e *Engine) SetTarget(name string, value float64) error {
	p, err := ParseTargetParam(name)
	if err != nil {
		return err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fmt.Errorf("%w: %s=%v", ErrInvalidValue, p, value)
	}
	if p == TargetRuntime && value > maxRuntimeHoursPerDay {
		return fmt.Errorf("%w: runtime %.2f exceeds %.0f hours per day", ErrInvalidValue, value, maxRuntimeHoursPerDay)
	}
	targetSetters[p](&e.state, value)
	return nil
}
