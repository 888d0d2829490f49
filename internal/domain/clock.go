package domain

import (
	"errors"
	"time"
)

// clockLayouts are the accepted wall-clock forms. Browser time inputs send
// "15:04", and "15:04:05" when a step below one minute is configured.
var clockLayouts = []string{ClockLayout, "15:04:05"}

// ErrClock reports a time of day that matches none of the accepted layouts.
var ErrClock = errors.New("time of day must be HH:MM")

// ParseClock reads a "15:04" or "15:04:05" time of day.
// An empty string is midnight.
func ParseClock(s string) (h, m, sec int, err error) {
	if s == "" {
		return 0, 0, 0, nil
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, ErrClock
}
