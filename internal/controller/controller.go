// Package controller implements the five-state heater control law: a
// hysteresis band around the target temperature, a timed stabilization gate,
// and a global overheat override that preempts every other transition.
package controller

import (
	"errors"
	"fmt"

	"heater_control/internal/sensor"
)

// ErrSensorUnavailable wraps a failed sensor read. The tick that produced it
// performed no state transition and the returned command repeats whatever the
// current state already dictated (fail-safe-by-freeze). Callers wanting
// fail-safe-by-off must apply that policy themselves.
var ErrSensorUnavailable = errors.New("sensor unavailable")

// Command is the actuator output derived from the current state after a tick.
type Command struct {
	HeaterOn  bool
	WarningOn bool
	State     State
}

// Transition describes a completed state change, for diagnostics.
type Transition struct {
	From         State
	To           State
	AtMillis     uint64
	TemperatureC float64
}

// Sink receives best-effort diagnostic callbacks. Implementations must not
// block; their failures never influence the control law.
type Sink interface {
	OnStateChange(t Transition)
	OnSample(temperatureC float64, s State)
}

// Controller owns the FSM state and decides actuator commands once per poll
// cycle. It is not safe for concurrent use: one caller drives Tick at a fixed
// cadence.
type Controller struct {
	cfg    Config
	sensor sensor.Sensor
	sink   Sink // optional

	current   State
	enteredAt uint64 // clock reading at the last transition, millis
}

// New constructs a controller in IDLE. nowMillis seeds the dwell clock.
func New(cfg Config, s sensor.Sensor, sink Sink, nowMillis uint64) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller config: %w", err)
	}
	if s == nil {
		return nil, errors.New("controller: sensor is required")
	}
	return &Controller{
		cfg:       cfg,
		sensor:    s,
		sink:      sink,
		current:   StateIdle,
		enteredAt: nowMillis,
	}, nil
}

// edge is the single outward transition a state defines. The overheat
// override is not part of the table: it is evaluated once, ahead of it.
type edge struct {
	when func(c *Controller, tempC float64, nowMillis uint64) bool
	to   State
}

var edges = map[State]edge{
	StateIdle:          {when: belowHysteresisFloor, to: StateHeating},
	StateHeating:       {when: reachedTarget, to: StateStabilizing},
	StateStabilizing:   {when: dwellElapsed, to: StateTargetReached},
	StateTargetReached: {when: belowHysteresisFloor, to: StateHeating},
	StateOverheat:      {when: recoveredFromOverheat, to: StateIdle},
}

func belowHysteresisFloor(c *Controller, tempC float64, _ uint64) bool {
	return tempC < c.cfg.TargetC-c.cfg.HysteresisC
}

func reachedTarget(c *Controller, tempC float64, _ uint64) bool {
	return tempC >= c.cfg.TargetC
}

// dwellElapsed uses unsigned subtraction so a wrapped millisecond counter
// still yields the correct elapsed dwell.
func dwellElapsed(c *Controller, _ float64, nowMillis uint64) bool {
	return nowMillis-c.enteredAt >= c.cfg.StabilizingMillis
}

func recoveredFromOverheat(c *Controller, tempC float64, _ uint64) bool {
	return tempC < c.cfg.TargetC-c.cfg.OverheatRecoveryMarginC
}

// Tick reads a fresh temperature sample, applies at most one transition and
// returns the actuator command for the resulting state.
//
// The overheat ceiling is checked before the per-state predicate and wins any
// same-tick race. On a failed sensor read no state changes, the dwell clock
// freezes and the command for the unchanged state is returned alongside
// ErrSensorUnavailable.
func (c *Controller) Tick(nowMillis uint64) (Command, error) {
	tempC, err := c.sensor.ReadTemperatureCelsius()
	if err != nil {
		return c.command(), fmt.Errorf("%w: %v", ErrSensorUnavailable, err)
	}
	if c.sink != nil {
		c.sink.OnSample(tempC, c.current)
	}

	if tempC >= c.cfg.OverheatC && c.current != StateOverheat {
		c.transition(StateOverheat, nowMillis, tempC)
	} else if e := edges[c.current]; e.when(c, tempC, nowMillis) {
		c.transition(e.to, nowMillis, tempC)
	}

	return c.command(), nil
}

// Reset returns the FSM to IDLE, as a power cycle would.
func (c *Controller) Reset(nowMillis uint64) {
	if c.current != StateIdle {
		c.transition(StateIdle, nowMillis, 0)
		return
	}
	c.enteredAt = nowMillis
}

// State returns the current FSM state.
func (c *Controller) State() State { return c.current }

// Config returns the immutable control-law configuration.
func (c *Controller) Config() Config { return c.cfg }

// transition updates state and dwell timestamp together; they never change
// independently.
func (c *Controller) transition(to State, nowMillis uint64, tempC float64) {
	from := c.current
	c.current = to
	c.enteredAt = nowMillis
	if c.sink != nil {
		c.sink.OnStateChange(Transition{
			From:         from,
			To:           to,
			AtMillis:     nowMillis,
			TemperatureC: tempC,
		})
	}
}

func (c *Controller) command() Command {
	return Command{
		HeaterOn:  c.current.HeaterOn(),
		WarningOn: c.current.WarningOn(),
		State:     c.current,
	}
}
