// Package clock supplies the monotonic millisecond source the control law
// measures dwell time against.
package clock

import "time"

// Clock returns a strictly non-decreasing millisecond reading.
type Clock interface {
	NowMillis() uint64
}

// Monotonic measures milliseconds since its creation using Go's
// monotonic-backed time package.
type Monotonic struct {
	start time.Time
}

// NewMonotonic returns a Monotonic clock starting at zero.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

func (m *Monotonic) NowMillis() uint64 {
	return uint64(time.Since(m.start).Milliseconds())
}

// Manual is a test clock advanced by hand.
type Manual struct {
	Millis uint64
}

func (m *Manual) NowMillis() uint64 { return m.Millis }

// Advance moves the clock forward. Wraparound is intentional: dwell
// arithmetic must survive it.
func (m *Manual) Advance(ms uint64) { m.Millis += ms }
