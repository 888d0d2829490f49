package domain

import (
	"slices"
	"strings"
	"time"
)

// Draft is the in-progress input a session is built from.
// Methods never modify the receiver; they return an updated copy so the
// caller decides where the state lives.
type Draft struct {
	Mode         Mode
	CourseName   string
	Dates        []time.Time // calendar dates, ascending, duplicate-free
	StartTime    string
	EndTime      string
	BaseTimezone string
}

// NewDraft returns the reset form state: online, no course, no dates,
// empty times and the given base timezone.
func NewDraft(baseTimezone string) Draft {
	return Draft{
		Mode:         ModeOnline,
		Dates:        []time.Time{},
		BaseTimezone: baseTimezone,
	}
}

// ToggleDate selects date if it is not selected yet, or deselects it if it is.
// Only the calendar day of date is considered.
func (d Draft) ToggleDate(date time.Time) Draft {
	date = CalendarDate(date)
	dates := slices.Clone(d.Dates)
	if i, found := slices.BinarySearchFunc(dates, date, compareDates); found {
		d.Dates = slices.Delete(dates, i, i+1)
	} else {
		d.Dates = slices.Insert(dates, i, date)
	}
	return d
}

// WithDates replaces the selection with dates, dropping duplicates.
func (d Draft) WithDates(dates ...time.Time) Draft {
	out := make([]time.Time, 0, len(dates))
	for _, t := range dates {
		out = append(out, CalendarDate(t))
	}
	slices.SortFunc(out, compareDates)
	d.Dates = slices.CompactFunc(out, time.Time.Equal)
	return d
}

// DatesString joins the selected dates as "2006-01-02|2006-01-03|...".
func (d Draft) DatesString() string {
	parts := make([]string, len(d.Dates))
	for i, t := range d.Dates {
		parts[i] = t.Format(DateLayout)
	}
	return strings.Join(parts, DatesSeparator)
}

func compareDates(a, b time.Time) int {
	return a.Compare(b)
}
