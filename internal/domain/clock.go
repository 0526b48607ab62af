package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock supplies the starting date when a caller initializes a region without
// one. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// StartOfHour truncates t to the hour in UTC, substituting the clock's current
// time for a zero value.
func StartOfHour(t time.Time) time.Time {
	if t.IsZero() {
		t = clock.Now()
	}
	return t.UTC().Truncate(time.Hour)
}
