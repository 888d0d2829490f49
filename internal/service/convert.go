package service

import (
	"fmt"
	"time"

	"github.com/pkordes/tzplanner/internal/domain"
)

// WallClock interprets the calendar day of date and a "15:04" clock reading
// as local time in loc. An empty clock means midnight.
//
// Offsets come from the tz database for that specific date, so DST and
// historical offset changes are honoured. A reading inside a spring-forward
// gap is shifted forward by the length of the gap, so 02:30 on the day
// New York skips from 02:00 to 03:00 becomes 03:30 EDT.
func WallClock(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	h, m, s, err := domain.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	t := time.Date(y, mo, d, h, m, s, 0, loc)

	ty, tmo, td := t.Date()
	if ty == y && tmo == mo && td == d && t.Hour() == h && t.Minute() == m && t.Second() == s {
		return t, nil
	}

	// The reading does not exist in loc. time.Date picks either side of the
	// gap depending on the zone; reading it with the offset in force before
	// the transition always lands after the gap.
	naive := time.Date(y, mo, d, h, m, s, 0, time.UTC)
	_, before := naive.Add(-24 * time.Hour).In(loc).Zone()
	return naive.Add(-time.Duration(before) * time.Second).In(loc), nil
}

// ConvertWallClock re-expresses a wall-clock reading in from as the same
// instant seen in to.
func ConvertWallClock(date time.Time, clock string, from, to *time.Location) (time.Time, error) {
	t, err := WallClock(date, clock, from)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(to), nil
}

// BuildExport produces the two export tables for sessions against refs.
//
// Inputs has one row per session. Conversions has exactly
// len(sessions)*len(refs) rows: session order outer, reference order inner.
// The first session whose times or timezones cannot be resolved fails the
// whole export with a *domain.ConversionError.
func BuildExport(sessions []domain.Session, refs []domain.ReferenceEntry) (domain.Export, error) {
	out := domain.Export{
		Inputs:      make([]domain.InputRow, 0, len(sessions)),
		Conversions: make([]domain.ConversionRow, 0, len(sessions)*len(refs)),
	}
	zones := zoneCache{}

	for _, s := range sessions {
		start, end, err := sessionInstants(s, zones)
		if err != nil {
			return domain.Export{}, err
		}
		out.Inputs = append(out.Inputs, inputRow(s))

		for _, ref := range refs {
			loc, err := zones.load(ref.Timezone)
			if err != nil {
				return domain.Export{}, &domain.ConversionError{SessionID: s.ID, Field: "timezone", Value: ref.Timezone, Err: err}
			}
			localStart, localEnd := start.In(loc), end.In(loc)
			out.Conversions = append(out.Conversions, domain.ConversionRow{
				ID:        s.ID,
				Country:   ref.Country,
				City:      ref.City,
				Region:    ref.Region,
				StartDate: localStart.Format(domain.DateLayout),
				StartTime: localStart.Format(domain.ClockLayout),
				EndDate:   localEnd.Format(domain.DateLayout),
				EndTime:   localEnd.Format(domain.ClockLayout),
				Timezone:  ref.Timezone,
			})
		}
	}
	return out, nil
}

// sessionInstants resolves a session's start and end to absolute instants.
func sessionInstants(s domain.Session, zones zoneCache) (start, end time.Time, err error) {
	base, err := zones.load(s.BaseTimezone)
	if err != nil {
		return start, end, &domain.ConversionError{SessionID: s.ID, Field: "base_timezone", Value: s.BaseTimezone, Err: err}
	}
	start, err = WallClock(s.StartDate, s.StartTime, base)
	if err != nil {
		return start, end, &domain.ConversionError{SessionID: s.ID, Field: "start_time", Value: s.StartTime, Err: err}
	}
	end, err = WallClock(s.EndDate, s.EndTime, base)
	if err != nil {
		return start, end, &domain.ConversionError{SessionID: s.ID, Field: "end_time", Value: s.EndTime, Err: err}
	}
	return start, end, nil
}

func inputRow(s domain.Session) domain.InputRow {
	return domain.InputRow{
		ID:             s.ID,
		ModeOfTraining: string(s.Mode),
		CourseName:     s.CourseName,
		ScheduleName:   s.ScheduleName,
		StartDate:      s.StartDate.Format(domain.DisplayDateLayout),
		EndDate:        s.EndDate.Format(domain.DisplayDateLayout),
		Dates:          s.Dates,
		BaseTimezone:   s.BaseTimezone,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
	}
}


// zoneCache memoises time.LoadLocation for the duration of one export.
type zoneCache map[string]*time.Location

func (z zoneCache) load(name string) (*time.Location, error) {
	if loc, ok := z[name]; ok {
		return loc, nil
	}
	// LoadLocation resolves "" to UTC and "Local" to the host zone.
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("unknown time zone %q", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	z[name] = loc
	return loc, nil
}
