// ABOUTME: Injectable time source for ingestion and pipeline logic
// ABOUTME: Provides a wall clock, a fixed clock for tests, and civil-date helpers
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Today returns the current civil date (midnight UTC) according to c.
func Today(c Clock) time.Time {
	return Date(c.Now())
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysFrom returns the civil date n calendar days after today.
func DaysFrom(c Clock, n int) time.Time {
	return Today(c).AddDate(0, 0, n)
}
