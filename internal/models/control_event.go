package models

import "time"

// Event types appended by the control loop.
const (
	EventStart       = "START"
	EventStop        = "STOP"
	EventStateChange = "STATE_CHANGE"
	EventSensorFault = "SENSOR_FAULT"
)

// ControlEvent is a single log entry.
type ControlEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // START | STOP | STATE_CHANGE | SENSOR_FAULT
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
