// Package actuator drives the heater relay and the overheat warning indicator.
// The real implementation uses the Linux GPIO character device; the fake
// implementation records commands for tests.
package actuator

// Actuator sets the binary heater and warning outputs.
type Actuator interface {
	SetHeater(on bool) error
	SetWarning(on bool) error

	// Close releases actuator resources. Implementations should leave the
	// heater de-energized.
	Close() error
}
