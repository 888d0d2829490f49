package domain

import "time"

const (
	scheduleStartLayout = "Jan 02"
	scheduleEndLayout   = "Jan 02, 2006"
)

// ScheduleName renders the human-readable span of a session, e.g.
// "Mar 05 - Mar 07, 2024". A single-day session renders as "Mar 05".
func ScheduleName(start, end time.Time) string {
	start, end = CalendarDate(start), CalendarDate(end)
	s := start.Format(scheduleStartLayout)
	if start.Equal(end) {
		return s
	}
	return s + " - " + end.Format(scheduleEndLayout)
}
