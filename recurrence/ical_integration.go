package recurrence

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const (
	// PropRule carries the RRULE a generated occurrence was derived from.
	PropRule = "X-CARESCHED-RULE"

	productID = "-//cyp0633//caresched//EN"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/cyp0633/caresched"))

// OccurrenceUID derives a stable UID for one occurrence of an event, so
// re-exporting the same schedule updates rather than duplicates entries.
func OccurrenceUID(eventID string, date time.Time) string {
	return uuid.NewSHA1(uidNamespace, []byte(eventID+"/"+date.Format("20060102"))).String()
}

// Occurrences expands a scheduled event with the engine's rules.
func (e *Engine) Occurrences(ev ScheduledEvent) []time.Time {
	var out []time.Time
	if ev.Offset != nil {
		for d := range e.OffsetOccurrences(ev.Start, *ev.Offset, ev.Count) {
			out = append(out, d)
		}
		return out
	}
	return e.FutureOccurrenceList(ev.Start, ev.Rule, ev.Count)
}

// ExportCalendar renders every occurrence of the given events as an all-day
// VEVENT. stamp becomes DTSTAMP of each entry.
func (e *Engine) ExportCalendar(events []ScheduledEvent, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")

	for _, ev := range events {
		rruleValue := ev.Rule.RRuleString()
		if ev.Offset != nil {
			rruleValue = ev.Offset.RRuleString()
		}

		occurrences := e.Occurrences(ev)
		for _, date := range occurrences {
			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, OccurrenceUID(ev.ID, date))
			event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
			event.Props.SetDate(ical.PropDateTimeStart, date)
			event.Props.SetDate(ical.PropDateTimeEnd, e.cal.AddDays(date, 1))
			event.Props.SetText(ical.PropSummary, ev.Name)
			if ev.Comment != "" {
				event.Props.SetText(ical.PropDescription, ev.Comment)
			}

			prop := ical.NewProp(PropRule)
			prop.Value = rruleValue
			event.Props.Set(prop)

			cal.Children = append(cal.Children, event.Component)
		}

		e.logger.Debug("exported schedule",
			"event", ev.ID,
			"rule", rruleValue,
			"occurrences", len(occurrences))
	}

	return cal
}

// WriteCalendar encodes cal as text/calendar.
func WriteCalendar(w io.Writer, cal *ical.Calendar) error {
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// RuleFromComponent recovers the periodicity rule of a component, preferring
// our own X-CARESCHED-RULE and falling back to a standard RRULE. ok is false
// when the component carries neither.
func RuleFromComponent(comp *ical.Component) (rule Rule, ok bool, err error) {
	for _, name := range []string{PropRule, ical.PropRecurrenceRule} {
		prop := comp.Props.Get(name)
		if prop == nil || strings.TrimSpace(prop.Value) == "" {
			continue
		}
		rule, err = ParseRRule(prop.Value)
		if err != nil {
			return Rule{}, false, err
		}
		return rule, true, nil
	}
	return Rule{}, false, nil
}

// StartDateFromComponent returns the DTSTART of comp normalized to the
// engine's calendar.
func (e *Engine) StartDateFromComponent(comp *ical.Component) (time.Time, error) {
	start, err := comp.Props.DateTime(ical.PropDateTimeStart, e.cal.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read DTSTART: %w", err)
	}
	return e.cal.Midnight(start), nil
}
