package sensor

import (
	"fmt"

	"heater_control/internal/i2c"
)

// DefaultLM75Addr is the LM75 factory-default I2C address.
const DefaultLM75Addr uint16 = 0x48

// lm75TempReg is the LM75 temperature register.
const lm75TempReg byte = 0x00

// LM75 reads an LM75-compatible digital temperature sensor over I2C.
type LM75 struct {
	bus  i2c.Bus
	addr uint16
}

// NewLM75 returns an LM75 driver on the given bus. addr 0 selects the
// factory-default address.
func NewLM75(bus i2c.Bus, addr uint16) *LM75 {
	if addr == 0 {
		addr = DefaultLM75Addr
	}
	return &LM75{bus: bus, addr: addr}
}

// ReadTemperatureCelsius reads the two-byte temperature register and decodes
// it. The LM75 reports a 9-bit two's-complement value in 0.5 °C steps: the
// MSB carries the integer part, bit 7 of the LSB carries the half degree,
// the remaining LSB bits are unused.
func (s *LM75) ReadTemperatureCelsius() (float64, error) {
	buf := make([]byte, 2)
	if err := s.bus.ReadReg(s.addr, lm75TempReg, buf); err != nil {
		return 0, fmt.Errorf("%w: lm75 register read: %v", ErrSensorRead, err)
	}
	raw := int16(uint16(buf[0])<<8|uint16(buf[1])) >> 7
	return float64(raw) * 0.5, nil
}
