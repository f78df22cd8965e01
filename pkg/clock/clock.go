package clock

import "time"

// Clock supplies the current wall-clock time. Every temporal rule in the
// booking path (past-date, past-time, advance limit, slot filtering) goes
// through this seam so tests can pin the hour and the day.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Real returns a Clock backed by time.Now.
func Real() Clock {
	return realClock{}
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}
