package service

import "time"

// TargetParams is a single setpoint change.
type TargetParams struct {
	Parameter string  // "spm" | "production" | "runtime", "target_" prefix allowed
	Value     float64 // strokes/min, bbl/day or hours/day
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "START", "STOP", "TARGET_CHANGE", "ALARM_RAISED", "ALARM_CLEARED", "ROLLUP", "ERROR"
	// Limit keeps only the most recent N events; 0 means all.
	Limit int
}

// AuthConfig carries token settings.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}
