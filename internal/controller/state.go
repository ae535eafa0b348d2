package controller

// State is the FSM state of the heater control loop. Exactly one state is
// active at any instant; the heater and warning outputs are pure functions
// of it.
type State uint8

const (
	StateIdle State = iota
	StateHeating
	StateStabilizing
	StateTargetReached
	StateOverheat
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateHeating:
		return "HEATING"
	case StateStabilizing:
		return "STABILIZING"
	case StateTargetReached:
		return "TARGET_REACHED"
	case StateOverheat:
		return "OVERHEAT"
	default:
		return "UNKNOWN"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// HeaterOn reports whether the heater is energized in this state.
func (s State) HeaterOn() bool { return s == StateHeating }

// WarningOn reports whether the warning indicator is lit in this state.
func (s State) WarningOn() bool { return s == StateOverheat }
