package models

import "time"

// HeaterState is the latest observed snapshot of the control loop.
type HeaterState struct {
	ID           int       `json:"id"`
	State        string    `json:"state"` // IDLE | HEATING | STABILIZING | TARGET_REACHED | OVERHEAT
	TemperatureC float64   `json:"temperature_c"`
	TargetC      float64   `json:"target_c"`
	HeaterOn     bool      `json:"heater_on"`
	WarningOn    bool      `json:"warning_on"`
	IsRunning    bool      `json:"is_running"`
	UpdatedAt    time.Time `json:"updated_at"`
}
