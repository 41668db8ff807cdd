package models

import "time"

// Event types written to the pump event log.
const (
	EventStart        = "START"
	EventStop         = "STOP"
	EventTargetChange = "TARGET_CHANGE"
	EventAlarmRaised  = "ALARM_RAISED"
	EventAlarmCleared = "ALARM_CLEARED"
	EventRollup       = "ROLLUP"
	EventError        = "ERROR"
)

// PumpEvent is a single log entry.
type PumpEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
