package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Quantity names used as keys of the operating limits table.
const (
	QuantityMotorAmps      = "motor_amps"
	QuantityMotorTemp      = "motor_temp"
	QuantityGearboxTemp    = "gearbox_temp"
	QuantityRodLoad        = "rod_load"
	QuantityProductionRate = "production_rate"
)

// ThresholdKind tells how a Limit's threshold is interpreted.
type ThresholdKind string

const (
	HighAlarm ThresholdKind = "alarm"     // alarm when value > threshold
	LowAlarm  ThresholdKind = "low_alarm" // alarm when value < threshold
	Normal    ThresholdKind = "normal"    // reference value only
)

// Limit is the configured envelope of one monitored quantity.
type Limit struct {
	Min       float64       `json:"min" mapstructure:"min"`
	Max       float64       `json:"max" mapstructure:"max"`
	Kind      ThresholdKind `json:"kind" mapstructure:"kind"`
	Threshold float64       `json:"threshold" mapstructure:"threshold"`
}

// Mid returns the centre of the [Min, Max] range.
func (l Limit) Mid() float64 {
	return (l.Min + l.Max) / 2
}

// OperatingLimits is the static limits table keyed by quantity name.
type OperatingLimits map[string]Limit

var ErrInvalidLimits = errors.New("invalid operating limits")

// expectedKinds lists every quantity the simulator needs and how it alarms.
var expectedKinds = map[string]ThresholdKind{
	QuantityMotorAmps:      HighAlarm,
	QuantityMotorTemp:      Normal,
	QuantityGearboxTemp:    HighAlarm,
	QuantityRodLoad:        HighAlarm,
	QuantityProductionRate: LowAlarm,
}

// DefaultOperatingLimits returns the stock limits of a mid-size beam pump unit.
func DefaultOperatingLimits() OperatingLimits {
	return OperatingLimits{
		QuantityMotorAmps:      {Min: 20, Max: 45, Kind: HighAlarm, Threshold: 42},
		QuantityMotorTemp:      {Min: 30, Max: 80, Kind: Normal, Threshold: 60},
		QuantityGearboxTemp:    {Min: 25, Max: 70, Kind: HighAlarm, Threshold: 65},
		QuantityRodLoad:        {Min: 1000, Max: 5000, Kind: HighAlarm, Threshold: 4500},
		QuantityProductionRate: {Min: 0, Max: 150, Kind: LowAlarm, Threshold: 40},
	}
}

// Validate checks that every required quantity is present and min <= threshold <= max.
func (ol OperatingLimits) Validate() error {
	names := make([]string, 0, len(expectedKinds))
	for name := range expectedKinds {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		l, ok := ol[name]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidLimits, name)
		}
		if !finite(l.Min) || !finite(l.Max) || !finite(l.Threshold) {
			return fmt.Errorf("%w: %q has non-finite values", ErrInvalidLimits, name)
		}
		if l.Kind != expectedKinds[name] {
			return fmt.Errorf("%w: %q kind is %q, want %q", ErrInvalidLimits, name, l.Kind, expectedKinds[name])
		}
		if l.Min > l.Threshold || l.Threshold > l.Max {
			return fmt.Errorf("%w: %q requires min <= %s <= max, got %.2f <= %.2f <= %.2f",
				ErrInvalidLimits, name, l.Kind, l.Min, l.Threshold, l.Max)
		}
	}
	return nil
}

// Clone returns an independent copy of the table.
func (ol OperatingLimits) Clone() OperatingLimits {
	out := make(OperatingLimits, len(ol))
	for k, v := range ol {
		out[k] = v
	}
	return out
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
