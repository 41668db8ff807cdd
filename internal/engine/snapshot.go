package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pumpjack_simulator/internal/models"
)

// Fields maps every snapshot field name to its current value. This is the
// contract protocol layers read once per tick.
func Fields(st models.PumpState) map[string]any {
	return map[string]any{
		"runtime":         st.Runtime,
		"spm":             st.SPM,
		"status":          st.Status,
		"motor_amps":      st.MotorAmps,
		"motor_temp":      st.MotorTemp,
		"gearbox_temp":    st.GearboxTemp,
		"crank_angle":     st.CrankAngle,
		"rod_load":        st.RodLoad,
		"production_rate": st.ProductionRate,

		"target_spm":        st.TargetSPM,
		"target_production": st.TargetProduction,
		"target_runtime":    st.TargetRuntime,

		"high_motor_amps":   st.HighMotorAmps,
		"high_gearbox_temp": st.HighGearboxTemp,
		"high_rod_load":     st.HighRodLoad,
		"low_production":    st.LowProduction,

		"availability": st.Availability,
		"performance":  st.Performance,
		"quality":      st.Quality,
		"oee":          st.OEE,
	}
}

var ErrNotNumeric = errors.New("snapshot value is not numeric")

// FieldFloat coerces a snapshot value to float64 for protocol layers that only
// carry numbers. Booleans map to 0/1. Anything else yields 0 and ErrNotNumeric.
func FieldFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}
