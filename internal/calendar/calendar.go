// Package calendar provides date-only arithmetic anchored to an explicit
// reference timezone.
//
// Every value returned by a Calendar is the first instant of a day in the
// calendar's location. That is midnight except on days where a
// daylight-saving gap starts at 00:00.
// Day differences are computed on civil dates, so a daylight-saving
// transition between two dates never shifts the result by a day.
package calendar

import (
	"time"
)

// Day is the length of a civil day used for whole-day differences.
const Day = 24 * time.Hour

// Calendar normalizes instants to calendar dates in a single location.
// The zero value uses UTC.
type Calendar struct {
	loc *time.Location
}

// New returns a calendar anchored to loc. A nil loc means UTC.
func New(loc *time.Location) Calendar {
	return Calendar{loc: loc}
}

// Location returns the reference location, never nil.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Midnight converts t into the calendar's location and strips the time of day.
func (c Calendar) Midnight(t time.Time) time.Time {
	loc := c.Location()
	y, m, d := t.In(loc).Date()
	return startOfDay(y, m, d, loc)
}

// Date builds midnight of the given civil date in the calendar's location.
// Out-of-range values are normalized the way time.Date does.
func (c Calendar) Date(year int, month time.Month, day int) time.Time {
	return startOfDay(year, month, day, c.Location())
}

// DaysBetween returns the signed number of whole days from a to b after both
// are normalized. It is negative when b falls before a.
func (c Calendar) DaysBetween(a, b time.Time) int {
	return int(civil(c.Midnight(b)).Sub(civil(c.Midnight(a))) / Day)
}

// DaysUntil returns how many calendar days remain from now until due.
// It is zero when due is today and negative once due has passed.
func (c Calendar) DaysUntil(now, due time.Time) int {
	return c.DaysBetween(now, due)
}

// AddDays moves t by n civil days and returns the normalized result.
func (c Calendar) AddDays(t time.Time, n int) time.Time {
	y, m, d := c.Midnight(t).Date()
	return c.Date(y, m, d+n)
}

// AddMonths moves t by n calendar months using time.AddDate normalization:
// a day-of-month missing from the target month rolls into the next one.
func (c Calendar) AddMonths(t time.Time, n int) time.Time {
	y, m, d := c.Midnight(t).Date()
	return c.Date(y, m+time.Month(n), d)
}

// AddYears moves t by n calendar years with the same rollover as AddMonths.
func (c Calendar) AddYears(t time.Time, n int) time.Time {
	y, m, d := c.Midnight(t).Date()
	return c.Date(y+n, m, d)
}

// Compare orders the normalized dates of a and b like time.Time.Compare.
func (c Calendar) Compare(a, b time.Time) int {
	return c.Midnight(a).Compare(c.Midnight(b))
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// startOfDay returns the first instant of the civil date in loc. Where a
// daylight-saving gap swallows midnight, time.Date lands on the previous
// day, so the day starts when the gap ends instead.
func startOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	year, month, day = time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Day() != day {
		_, end := t.ZoneBounds()
		t = end
	}
	return t
}

// civil re-anchors a normalized date to UTC so subtraction counts exact days.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
