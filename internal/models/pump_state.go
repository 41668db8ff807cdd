package models

import "time"

// Default setpoints a fresh pumpjack starts with.
const (
	DefaultTargetSPM        = 6.0
	DefaultTargetProduction = 100.0
	DefaultTargetRuntime    = 23.0 // hours per day
)

// PumpState is the full record of one simulated pumpjack: operational readings,
// setpoints, alarm flags and the last computed performance metrics.
type PumpState struct {
	// Operational
	Runtime        float64 `json:"runtime"` // accumulated hours
	SPM            float64 `json:"spm"`
	Status         bool    `json:"status"` // running flag
	MotorAmps      float64 `json:"motor_amps"`
	MotorTemp      float64 `json:"motor_temp"`   // °C
	GearboxTemp    float64 `json:"gearbox_temp"` // °C
	CrankAngle     float64 `json:"crank_angle"`  // degrees, [0,360)
	RodLoad        float64 `json:"rod_load"`     // lbs
	ProductionRate float64 `json:"production_rate"`

	// Setpoints
	TargetSPM        float64 `json:"target_spm"`
	TargetProduction float64 `json:"target_production"`
	TargetRuntime    float64 `json:"target_runtime"`

	// Alarms
	HighMotorAmps   bool `json:"high_motor_amps"`
	HighGearboxTemp bool `json:"high_gearbox_temp"`
	HighRodLoad     bool `json:"high_rod_load"`
	LowProduction   bool `json:"low_production"`

	// Performance, refreshed once per simulated hour
	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Quality      float64 `json:"quality"`
	OEE          float64 `json:"oee"`
}

// NewPumpState returns a stopped pumpjack with zeroed readings and nominal setpoints.
func NewPumpState() PumpState {
	return PumpState{
		TargetSPM:        DefaultTargetSPM,
		TargetProduction: DefaultTargetProduction,
		TargetRuntime:    DefaultTargetRuntime,
	}
}

// StoredState is the persisted form of the latest snapshot.
type StoredState struct {
	ID        int       `json:"id"`
	Tick      uint64    `json:"tick"`
	State     PumpState `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Alarms returns every alarm flag keyed by its snapshot field name.
func (s PumpState) Alarms() map[string]bool {
	return map[string]bool{
		"high_motor_amps":   s.HighMotorAmps,
		"high_gearbox_temp": s.HighGearboxTemp,
		"high_rod_load":     s.HighRodLoad,
		"low_production":    s.LowProduction,
	}
}
