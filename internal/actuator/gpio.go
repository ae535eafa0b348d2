//go:build linux

package actuator

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Default BCM line offsets matching the reference wiring.
const (
	DefaultHeaterPin  = 8
	DefaultWarningPin = 13
)

// GPIO drives the heater relay and warning LED through gpiochip lines.
type GPIO struct {
	chip    *gpiocdev.Chip
	heater  *gpiocdev.Line
	warning *gpiocdev.Line
}

// NewGPIO requests the heater and warning lines as outputs, both initially low.
func NewGPIO(chipName string, heaterPin, warningPin int) (*GPIO, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %q: %w", chipName, err)
	}

	heater, err := chip.RequestLine(heaterPin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request heater pin %d: %w", heaterPin, err)
	}

	warning, err := chip.RequestLine(warningPin, gpiocdev.AsOutput(0))
	if err != nil {
		heater.Close()
		chip.Close()
		return nil, fmt.Errorf("request warning pin %d: %w", warningPin, err)
	}

	return &GPIO{chip: chip, heater: heater, warning: warning}, nil
}

// SetHeater energizes or de-energizes the heater relay line.
func (g *GPIO) SetHeater(on bool) error {
	if err := g.heater.SetValue(boolToValue(on)); err != nil {
		return fmt.Errorf("set heater line: %w", err)
	}
	return nil
}

// SetWarning drives the warning indicator line.
func (g *GPIO) SetWarning(on bool) error {
	if err := g.warning.SetValue(boolToValue(on)); err != nil {
		return fmt.Errorf("set warning line: %w", err)
	}
	return nil
}

// Close forces both outputs low and releases the lines and chip.
func (g *GPIO) Close() error {
	var errs []error

	if g.heater != nil {
		if err := g.heater.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear heater line: %w", err))
		}
		if err := g.heater.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close heater line: %w", err))
		}
	}
	if g.warning != nil {
		if err := g.warning.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear warning line: %w", err))
		}
		if err := g.warning.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close warning line: %w", err))
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func boolToValue(on bool) int {
	if on {
		return 1
	}
	return 0
}
