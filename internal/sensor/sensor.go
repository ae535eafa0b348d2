// Package sensor provides temperature sensor drivers behind a common interface.
// Real drivers decode an LM75 over I2C or a TMP36 over an ADC; the fake driver
// replays scripted readings for tests.
package sensor

import "errors"

// ErrSensorRead indicates a communication fault or malformed data from the
// sensor. Drivers must return it (wrapped) instead of a sentinel temperature.
var ErrSensorRead = errors.New("sensor read failed")

// Sensor reads the current temperature in degrees Celsius.
type Sensor interface {
	ReadTemperatureCelsius() (float64, error)
}
