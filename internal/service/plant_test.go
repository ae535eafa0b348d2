package service

import (
	"testing"
	"time"
)

// fixedSteps replaces the plant clock with deterministic one-second steps.
func fixedSteps(p *Plant) *time.Time {
	now := time.Unix(0, 0)
	p.now = func() time.Time { return now }
	p.last = now
	return &now
}

func TestPlant_HeatsWhileEnergized(t *testing.T) {
	p := NewPlant()
	now := fixedSteps(p)

	if err := p.SetHeater(true); err != nil {
		t.Fatalf("SetHeater(): %v", err)
	}
	*now = now.Add(10 * time.Second)

	got, err := p.ReadTemperatureCelsius()
	if err != nil {
		t.Fatalf("ReadTemperatureCelsius(): %v", err)
	}
	if got <= PlantAmbientC {
		t.Fatalf("plant did not heat: %.2f", got)
	}
}

func TestPlant_DecaysTowardAmbientWhenOff(t *testing.T) {
	p := NewPlant()
	now := fixedSteps(p)
	p.tempC = PlantAmbientC + 20

	*now = now.Add(10 * time.Second)
	first, _ := p.ReadTemperatureCelsius()
	if first >= PlantAmbientC+20 {
		t.Fatalf("plant did not cool: %.2f", first)
	}

	*now = now.Add(10 * time.Second)
	second, _ := p.ReadTemperatureCelsius()
	if second >= first || second < PlantAmbientC {
		t.Fatalf("cooling not monotonic toward ambient: %.2f then %.2f", first, second)
	}
}

func TestPlant_WarningPassthrough(t *testing.T) {
	p := NewPlant()
	if p.WarningOn() {
		t.Fatalf("warning should start off")
	}
	if err := p.SetWarning(true); err != nil {
		t.Fatalf("SetWarning(): %v", err)
	}
	if !p.WarningOn() {
		t.Fatalf("warning should be on")
	}
}
