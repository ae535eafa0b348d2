package service

import (
	"sync"
	"time"
)

// ----------- Plant simulation constants -----------
const (
	PlantAmbientC      = 25.0 // ambient temperature °C
	PlantHeatCPerSec   = 3.0  // °C per second while the heater is energized
	PlantLossPerSec    = 0.05 // loss coefficient toward ambient, 1/s
	PlantWarmStartBias = 0.0  // initial offset above ambient
)

// Plant is a software thermal plant for running the stack without hardware.
// It implements both the sensor and the actuator contracts: the heater
// command it receives feeds the temperature it reports. Heating ramps
// linearly; losses pull toward ambient proportionally to the difference.
type Plant struct {
	mu        sync.Mutex
	tempC     float64
	heaterOn  bool
	warningOn bool
	last      time.Time

	ambientC   float64
	heatPerSec float64
	lossPerSec float64
	now        func() time.Time
}

// NewPlant returns a plant at ambient temperature.
func NewPlant() *Plant {
	p := &Plant{
		tempC:      PlantAmbientC + PlantWarmStartBias,
		ambientC:   PlantAmbientC,
		heatPerSec: PlantHeatCPerSec,
		lossPerSec: PlantLossPerSec,
		now:        time.Now,
	}
	p.last = p.now()
	return p
}

// ReadTemperatureCelsius advances the simulation to now and reports the
// plant temperature. It never fails.
func (p *Plant) ReadTemperatureCelsius() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()
	return p.tempC, nil
}

func (p *Plant) SetHeater(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advance()
	p.heaterOn = on
	return nil
}

func (p *Plant) SetWarning(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.warningOn = on
	return nil
}

func (p *Plant) Close() error { return nil }

// WarningOn reports the warning indicator, for inspection.
func (p *Plant) WarningOn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.warningOn
}

// advance integrates the plant since the previous call. Callers hold p.mu.
func (p *Plant) advance() {
	now := p.now()
	dt := now.Sub(p.last).Seconds()
	p.last = now
	if dt <= 0 {
		return
	}
	if p.heaterOn {
		p.tempC += p.heatPerSec * dt
	}
	p.tempC += p.lossPerSec * (p.ambientC - p.tempC) * dt
}
