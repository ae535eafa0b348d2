package sensor

import "errors"

// Fake is a test double that returns scripted temperature readings.
type Fake struct {
	// Samples contains scripted readings in °C. Each call to
	// ReadTemperatureCelsius consumes the next sample; once exhausted the
	// last sample is returned repeatedly.
	Samples []float64

	// ReadError, if set, is returned by every read.
	ReadError error

	// Reads counts completed read calls, including failed ones.
	Reads int

	index int
}

// NewFake creates a Fake with the given samples.
func NewFake(samples ...float64) *Fake {
	return &Fake{Samples: samples}
}

func (f *Fake) ReadTemperatureCelsius() (float64, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}
	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// Reset rewinds the fake to the first sample.
func (f *Fake) Reset() {
	f.index = 0
	f.Reads = 0
}
