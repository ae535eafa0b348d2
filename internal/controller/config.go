package controller

import "errors"

// Configuration errors, rejected eagerly at construction.
var (
	ErrNegativeHysteresis     = errors.New("hysteresis must not be negative")
	ErrOverheatBelowTarget    = errors.New("overheat temperature must exceed target temperature")
	ErrNegativeRecoveryMargin = errors.New("overheat recovery margin must not be negative")
)

// Config is the immutable control-law configuration, supplied once at
// controller construction. No runtime reconfiguration is supported.
type Config struct {
	// TargetC is the desired steady-state temperature in °C.
	TargetC float64 `json:"target_c"`

	// HysteresisC is the deadband below target before re-heating is
	// permitted.
	HysteresisC float64 `json:"hysteresis_c"`

	// OverheatC is the hard safety ceiling. Reaching it overrides every
	// state.
	OverheatC float64 `json:"overheat_c"`

	// StabilizingMillis is the minimum dwell in STABILIZING before
	// promotion to TARGET_REACHED.
	StabilizingMillis uint64 `json:"stabilizing_ms"`

	// OverheatRecoveryMarginC is the offset below target required to leave
	// OVERHEAT. Zero means recovery as soon as the temperature drops below
	// target.
	OverheatRecoveryMarginC float64 `json:"overheat_recovery_margin_c"`
}

// Validate rejects configurations the control law cannot operate under.
func (c Config) Validate() error {
	if c.HysteresisC < 0 {
		return ErrNegativeHysteresis
	}
	if c.OverheatC <= c.TargetC {
		return ErrOverheatBelowTarget
	}
	if c.OverheatRecoveryMarginC < 0 {
		return ErrNegativeRecoveryMargin
	}
	return nil
}
