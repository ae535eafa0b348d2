// Package i2c provides minimal I2C bus access for register-based sensors.
// The real implementation drives a Linux i2c-dev character device; tests use
// in-memory fakes against the Bus interface.
package i2c

// Bus performs register reads against a slave device.
type Bus interface {
	// ReadReg selects the device at addr, writes the register pointer and
	// reads len(buf) bytes into buf.
	ReadReg(addr uint16, reg byte, buf []byte) error

	// Close releases the bus.
	Close() error
}
