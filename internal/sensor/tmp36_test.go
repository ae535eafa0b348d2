package sensor

import (
	"errors"
	"math"
	"testing"
)

type fakeADC struct {
	raw int
	err error
}

func (a *fakeADC) Read() (int, error) { return a.raw, a.err }

func TestTMP36_Convert(t *testing.T) {
	cases := []struct {
		name string
		raw  int
		want float64
	}{
		{"zero_counts", 0, -50.0},    // 0V
		{"full_scale", 1023, 450.0},  // 5.0V
		{"mid_scale", 307, 100.0489}, // ~1.5V
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewTMP36(&fakeADC{raw: tc.raw}, 0)
			got, err := s.ReadTemperatureCelsius()
			if err != nil {
				t.Fatalf("ReadTemperatureCelsius(): %v", err)
			}
			if math.Abs(got-tc.want) > 0.01 {
				t.Fatalf("converted %.4f, want %.4f", got, tc.want)
			}
		})
	}
}

func TestTMP36_ADCFaultReturnsSensorReadError(t *testing.T) {
	s := NewTMP36(&fakeADC{err: errors.New("spi timeout")}, 5.0)
	if _, err := s.ReadTemperatureCelsius(); !errors.Is(err, ErrSensorRead) {
		t.Fatalf("err = %v, want ErrSensorRead", err)
	}
}

func TestTMP36_RejectsOutOfRangeCounts(t *testing.T) {
	for _, raw := range []int{-1, 1024} {
		s := NewTMP36(&fakeADC{raw: raw}, 5.0)
		if _, err := s.ReadTemperatureCelsius(); !errors.Is(err, ErrSensorRead) {
			t.Fatalf("raw=%d: err = %v, want ErrSensorRead", raw, err)
		}
	}
}
