//go:build !linux

package actuator

import "errors"

// GPIO is not available on non-Linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-Linux platforms.
func NewGPIO(chipName string, heaterPin, warningPin int) (*GPIO, error) {
	return nil, errors.New("gpio actuator: not supported on this platform (requires Linux)")
}

func (g *GPIO) SetHeater(on bool) error { return errors.New("gpio actuator: not supported") }

func (g *GPIO) SetWarning(on bool) error { return errors.New("gpio actuator: not supported") }

func (g *GPIO) Close() error { return nil }
