package recurrence

import (
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/cyp0633/caresched/internal/calendar"
)

// Engine resolves occurrence dates for periodicity rules and fixed offsets.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cal    calendar.Calendar
	config EngineConfig
	logger *slog.Logger
}

// NewEngine creates a new recurrence engine instance
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultEngineConfig)
}

// Calendar returns the calendar the engine normalizes dates with.
func (e *Engine) Calendar() calendar.Calendar {
	return e.cal
}

// NextOccurrence returns the first occurrence of rule strictly after last.
// The result is the start of that day in the engine's location.
func (e *Engine) NextOccurrence(last time.Time, rule Rule) time.Time {
	last = e.cal.Midnight(last)

	switch rule.kind {
	case KindWeekly:
		return e.nextWeekly(last, rule.weekDays)
	case KindMonthly:
		return e.nextMonthly(last, rule.monthDays)
	case KindCustom:
		return e.cal.AddDays(last, rule.IntervalDays())
	default:
		return e.cal.AddDays(last, 1)
	}
}

func (e *Engine) nextWeekly(last time.Time, days WeekdaySet) time.Time {
	if days.Empty() {
		return e.cal.AddDays(last, 7)
	}

	current := last.Weekday()
	if next, ok := days.after(current); ok {
		return e.cal.AddDays(last, int(next-current))
	}
	// Wrap to the earliest listed weekday of the following week
	return e.cal.AddDays(last, 7-int(current)+int(days.first()))
}

func (e *Engine) nextMonthly(last time.Time, days MonthDaySet) time.Time {
	if days.Empty() {
		return e.cal.AddMonths(last, 1)
	}

	year, month, day := last.Date()
	target, ok := days.after(day)
	if !ok {
		// No listed day left this month
		next := e.cal.Date(year, month+1, 1)
		year, month, target = next.Year(), next.Month(), days.first()
	}

	if target <= calendar.DaysIn(year, month) {
		return e.cal.Date(year, month, target)
	}

	// The target month lacks that day: skip it entirely. The month after a
	// short month always has 31 days, so the first listed day exists there.
	return e.cal.Date(year, month+1, days.first())
}

// FutureOccurrences yields count dates starting with start itself, each
// following date being the NextOccurrence of the previous one. The sequence
// can be ranged over any number of times.
func (e *Engine) FutureOccurrences(start time.Time, rule Rule, count int) iter.Seq[time.Time] {
	count = e.capCount(count, "rule", rule.String())
	first := e.cal.Midnight(start)

	return func(yield func(time.Time) bool) {
		current := first
		for i := 0; i < count; i++ {
			if i > 0 {
				current = e.NextOccurrence(current, rule)
			}
			if !yield(current) {
				return
			}
		}
	}
}

// FutureOccurrenceList collects FutureOccurrences into a slice.
func (e *Engine) FutureOccurrenceList(start time.Time, rule Rule, count int) []time.Time {
	return slices.Collect(e.FutureOccurrences(start, rule, count))
}

// Advance moves last forward by a fixed offset. Days and weeks add civil
// days; months and years follow time.AddDate, so Jan 31 plus one month
// rolls over into March.
func (e *Engine) Advance(last time.Time, offset FixedOffset) time.Time {
	switch offset.Unit {
	case UnitWeeks:
		return e.cal.AddDays(last, 7*offset.Amount)
	case UnitMonths:
		return e.cal.AddMonths(last, offset.Amount)
	case UnitYears:
		return e.cal.AddYears(last, offset.Amount)
	default:
		return e.cal.AddDays(last, offset.Amount)
	}
}

// OffsetOccurrences is FutureOccurrences for a fixed offset: start, then
// start advanced once, twice, and so on.
func (e *Engine) OffsetOccurrences(start time.Time, offset FixedOffset, count int) iter.Seq[time.Time] {
	count = e.capCount(count, "offset", offset.String())
	first := e.cal.Midnight(start)

	return func(yield func(time.Time) bool) {
		current := first
		for i := 0; i < count; i++ {
			if i > 0 {
				current = e.Advance(current, offset)
			}
			if !yield(current) {
				return
			}
		}
	}
}

// DaysUntil returns the number of calendar days from now until the due date,
// counted in the engine's location. Overdue dates give a negative result.
func (e *Engine) DaysUntil(now, due time.Time) int {
	return e.cal.DaysUntil(now, due)
}

func (e *Engine) capCount(count int, kind, desc string) int {
	if count < 0 {
		return 0
	}
	if limit := e.config.MaxOccurrences; limit > 0 && count > limit {
		e.logger.Debug("occurrence count capped",
			kind, desc,
			"requested", count,
			"max", limit)
		return limit
	}
	return count
}
