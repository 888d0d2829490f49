package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Registry is an ordered, immutable collection of sessions.
// Add and Delete return a new Registry and leave the receiver untouched,
// so a Registry value can be shared freely.
type Registry struct {
	sessions []Session
}

// NewRegistry builds a Registry holding a copy of sessions in the given order.
func NewRegistry(sessions []Session) Registry {
	return Registry{sessions: slices.Clone(sessions)}
}

// Len returns the number of sessions.
func (r Registry) Len() int {
	return len(r.sessions)
}

// Sessions returns a snapshot in insertion order. Never nil.
func (r Registry) Sessions() []Session {
	out := make([]Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// Add builds a Session from d and appends it.
// Returns ErrValidation if no dates are selected, the mode is unknown, the
// base timezone is not in the tz database or a time of day is malformed;
// the registry is unchanged then.
func (r Registry) Add(d Draft) (Registry, Session, error) {
	if len(d.Dates) == 0 {
		return r, Session{}, fmt.Errorf("%w: no dates selected", ErrValidation)
	}
	mode, err := ParseMode(string(d.Mode))
	if err != nil {
		return r, Session{}, err
	}
	if err := validateTimezone(d.BaseTimezone); err != nil {
		return r, Session{}, err
	}
	if _, _, _, err := ParseClock(d.StartTime); err != nil {
		return r, Session{}, fmt.Errorf("%w: start time %q must be HH:MM", ErrValidation, d.StartTime)
	}
	if _, _, _, err := ParseClock(d.EndTime); err != nil {
		return r, Session{}, fmt.Errorf("%w: end time %q must be HH:MM", ErrValidation, d.EndTime)
	}

	// A hand-built Draft may be unsorted or hold duplicates.
	d = d.WithDates(d.Dates...)
	start, end := d.Dates[0], d.Dates[len(d.Dates)-1]

	s := Session{
		Key:          uuid.New(),
		ID:           len(r.sessions) + 1,
		Mode:         mode,
		CourseName:   d.CourseName,
		ScheduleName: ScheduleName(start, end),
		StartDate:    start,
		EndDate:      end,
		Dates:        d.DatesString(),
		BaseTimezone: d.BaseTimezone,
		StartTime:    d.StartTime,
		EndTime:      d.EndTime,
	}

	next := make([]Session, len(r.sessions), len(r.sessions)+1)
	copy(next, r.sessions)
	return Registry{sessions: append(next, s)}, s, nil
}

// Delete removes the session at the 0-based position.
// An out-of-range position returns r unchanged. Remaining IDs are kept as is.
func (r Registry) Delete(position int) Registry {
	if position < 0 || position >= len(r.sessions) {
		return r
	}
	return Registry{sessions: slices.Delete(slices.Clone(r.sessions), position, position+1)}
}

func validateTimezone(name string) error {
	if name == "" {
		return fmt.Errorf("%w: base timezone is required", ErrValidation)
	}
	// time.LoadLocation maps "Local" to the host zone, which is not an IANA name.
	if name == "Local" {
		return fmt.Errorf("%w: unknown base timezone %q", ErrValidation, name)
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("%w: unknown base timezone %q", ErrValidation, name)
	}
	return nil
}
