package engine

import (
	"errors"
	"math"
	"testing"

	"pumpjack_simulator/internal/models"
)

func TestSetTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		param   string
		value   float64
		wantErr error
		check   func(models.PumpState) bool
	}{
		{"spm", "spm", 8, nil, func(s models.PumpState) bool { return s.TargetSPM == 8 }},
		{"prefixed spm", "target_spm", 7.5, nil, func(s models.PumpState) bool { return s.TargetSPM == 7.5 }},
		{"production", "production", 120, nil, func(s models.PumpState) bool { return s.TargetProduction == 120 }},
		{"runtime mixed case", " Target_Runtime ", 20, nil, func(s models.PumpState) bool { return s.TargetRuntime == 20 }},
		{"zero accepted", "production", 0, nil, func(s models.PumpState) bool { return s.TargetProduction == 0 }},
		{"unknown parameter", "torque", 1, ErrInvalidParameter, nil},
		{"empty parameter", "", 1, ErrInvalidParameter, nil},
		{"negative", "spm", -1, ErrInvalidValue, nil},
		{"nan", "spm", math.NaN(), ErrInvalidValue, nil},
		{"inf", "production", math.Inf(1), ErrInvalidValue, nil},
		{"runtime over a day", "runtime", 24.5, ErrInvalidValue, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newTestEngine(t, fixedSource(0.5))
			before := e.State()

			err := e.SetTarget(tt.param, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if e.State() != before {
					t.Fatalf("state mutated on rejected SetTarget")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.check(e.State()) {
				t.Fatalf("target not applied: %+v", e.State())
			}
		})
	}
}

func TestParseTargetParam(t *testing.T) {
	for _, p := range TargetParams() {
		got, err := ParseTargetParam("target_" + string(p))
		if err != nil || got != p {
			t.Fatalf("ParseTargetParam(target_%s) = %q, %v", p, got, err)
		}
	}
	if _, err := ParseTargetParam("status"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}
