// Package stay computes day counts, covered dates and validity for boarding
// and daycare stays. A stay is an inclusive range of calendar dates.
package stay

import (
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/samber/mo"

	"github.com/cyp0633/caresched/internal/calendar"
	"github.com/cyp0633/caresched/internal/locale"
)

// Period is a validated stay with both endpoints at midnight.
type Period struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Summary bundles what billing and attendance need from one stay.
type Summary struct {
	Period
	Days  int
	Dates []time.Time
	Label string
}

// Calculator evaluates stays against a single calendar and locale. It holds
// no mutable state.
type Calculator struct {
	cal    calendar.Calendar
	config Config
	logger *slog.Logger
}

// NewCalculator creates a calculator with DefaultConfig
func NewCalculator() *Calculator {
	return NewCalculatorWithConfig(DefaultConfig)
}

// Calendar returns the calendar the calculator normalizes dates with.
func (c *Calculator) Calendar() calendar.Calendar {
	return c.cal
}

// Locale returns the locale used by Format and Validate.
func (c *Calculator) Locale() locale.Locale {
	return c.config.Locale
}

// DayCount returns the number of billable days, both endpoints included.
// It never returns less than 1, even when checkOut precedes checkIn.
func (c *Calculator) DayCount(checkIn, checkOut time.Time) int {
	return max(c.cal.DaysBetween(checkIn, checkOut)+1, 1)
}

// CoveredDates yields every date from checkIn to checkOut inclusive in
// ascending order. The sequence is empty when checkOut precedes checkIn.
func (c *Calculator) CoveredDates(checkIn, checkOut time.Time) iter.Seq[time.Time] {
	first := c.cal.Midnight(checkIn)
	n := c.cal.DaysBetween(checkIn, checkOut) + 1

	return func(yield func(time.Time) bool) {
		for i := 0; i < n; i++ {
			if !yield(c.cal.AddDays(first, i)) {
				return
			}
		}
	}
}

// CoveredDateList collects CoveredDates into a slice.
func (c *Calculator) CoveredDateList(checkIn, checkOut time.Time) []time.Time {
	return slices.Collect(c.CoveredDates(checkIn, checkOut))
}

// Contains reports whether date falls within the stay, endpoints included.
func (c *Calculator) Contains(date, checkIn, checkOut time.Time) bool {
	return c.cal.Compare(checkIn, date) <= 0 && c.cal.Compare(date, checkOut) <= 0
}

// Format renders a stay label such as "15/01 a 17/01 (3 diárias)".
func (c *Calculator) Format(checkIn, checkOut time.Time, dayCount int) string {
	loc := c.config.Locale
	return loc.ShortDate(c.cal.Midnight(checkIn)) +
		loc.RangeSeparator() +
		loc.ShortDate(c.cal.Midnight(checkOut)) +
		" (" + loc.Sprintf(locale.MsgDays, dayCount) + ")"
}

// Validate checks ordering and maximum span. On failure the error is a
// *ValidationError wrapping ErrOrdering or ErrSpanTooLong.
func (c *Calculator) Validate(checkIn, checkOut time.Time) mo.Result[Period] {
	span := c.cal.DaysBetween(checkIn, checkOut)
	loc := c.config.Locale

	switch {
	case span < 0:
		c.logger.Debug("stay rejected", "reason", "ordering", "span", span)
		return mo.Err[Period](&ValidationError{
			Err:      ErrOrdering,
			Message:  loc.Sprintf(locale.MsgOrdering),
			SpanDays: span,
		})
	case span > c.config.MaxSpanDays:
		c.logger.Debug("stay rejected", "reason", "span", "span", span, "max", c.config.MaxSpanDays)
		return mo.Err[Period](&ValidationError{
			Err:      ErrSpanTooLong,
			Message:  loc.Sprintf(locale.MsgSpanTooLong, c.config.MaxSpanDays),
			SpanDays: span,
		})
	}

	return mo.Ok(Period{
		CheckIn:  c.cal.Midnight(checkIn),
		CheckOut: c.cal.Midnight(checkOut),
	})
}

// Summarize validates the stay and computes its count, dates and label.
func (c *Calculator) Summarize(checkIn, checkOut time.Time) mo.Result[Summary] {
	period, err := c.Validate(checkIn, checkOut).Get()
	if err != nil {
		return mo.Err[Summary](err)
	}

	days := c.DayCount(period.CheckIn, period.CheckOut)
	return mo.Ok(Summary{
		Period: period,
		Days:   days,
		Dates:  c.CoveredDateList(period.CheckIn, period.CheckOut),
		Label:  c.Format(period.CheckIn, period.CheckOut, days),
	})
}
