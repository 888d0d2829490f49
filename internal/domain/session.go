// Package domain contains the core data types for tzplanner and the pure
// Session Registry that operates on them.
// Nothing in this package performs I/O; callers own all state.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Calendar and display layouts shared across the module.
const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02-01-2006"
	ClockLayout       = "15:04"
	DatesSeparator    = "|"
)

// Mode is the delivery mode of a training session.
type Mode string

const (
	ModeOnline  Mode = "Online"
	ModeOffline Mode = "Offline"
)

// ParseMode accepts "Online" or "Offline" in any letter case.
// An empty string yields ModeOnline, the form default.
func ParseMode(s string) (Mode, error) {
	switch {
	case s == "":
		return ModeOnline, nil
	case strings.EqualFold(s, string(ModeOnline)):
		return ModeOnline, nil
	case strings.EqualFold(s, string(ModeOffline)):
		return ModeOffline, nil
	}
	return "", fmt.Errorf("%w: mode of training must be %s or %s", ErrValidation, ModeOnline, ModeOffline)
}

// Session is one scheduled run of a training course.
//
// ID is the 1-based sequence number assigned when the session was added
// (current count + 1). It is never renumbered, so after deletions it is
// neither contiguous nor guaranteed unique. Key is the unique identity.
type Session struct {
	Key          uuid.UUID
	ID           int
	Mode         Mode
	CourseName   string
	ScheduleName string
	StartDate    time.Time // earliest selected date, midnight UTC
	EndDate      time.Time // latest selected date, midnight UTC
	Dates        string    // every selected date, ascending, "|"-joined
	BaseTimezone string    // IANA name the times below are entered in
	StartTime    string    // "15:04"; empty means midnight
	EndTime      string
}

// CalendarDate strips the clock and location from t, keeping only the
// year, month and day as seen in t's own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, s)
	}
	return t, nil
}
