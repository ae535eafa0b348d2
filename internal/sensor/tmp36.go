package sensor

import "fmt"

// ADC reads a raw analog conversion (10-bit, 0..1023).
type ADC interface {
	Read() (int, error)
}

// DefaultVref is the analog reference voltage assumed when none is configured.
const DefaultVref = 5.0

// TMP36 reads a TMP36 analog linear temperature sensor through an ADC.
// The TMP36 outputs 750 mV at 25 °C with a 10 mV/°C slope.
type TMP36 struct {
	adc  ADC
	vref float64
}

// NewTMP36 returns a TMP36 driver. vref <= 0 selects DefaultVref.
func NewTMP36(adc ADC, vref float64) *TMP36 {
	if vref <= 0 {
		vref = DefaultVref
	}
	return &TMP36{adc: adc, vref: vref}
}

// ReadTemperatureCelsius converts a raw ADC count to degrees Celsius.
func (s *TMP36) ReadTemperatureCelsius() (float64, error) {
	raw, err := s.adc.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: tmp36 adc read: %v", ErrSensorRead, err)
	}
	if raw < 0 || raw > 1023 {
		return 0, fmt.Errorf("%w: tmp36 raw count %d out of range", ErrSensorRead, raw)
	}
	voltage := float64(raw) * s.vref / 1023.0
	return (voltage - 0.5) * 100, nil
}
