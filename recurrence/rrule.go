package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var toRRuleWeekday = [7]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// ROption expresses the rule as RFC 5545 recurrence options anchored at
// dtstart.
//
// The mapping is exact for daily, weekly and custom rules and for monthly
// rules with listed days, where RFC 5545 also skips months lacking a listed
// day. A monthly rule without listed days differs for days 29-31: RRULE
// skips the short month while NextOccurrence rolls over into the next one.
func (r Rule) ROption(dtstart time.Time) rrule.ROption {
	opt := rrule.ROption{Dtstart: dtstart}

	switch r.kind {
	case KindWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range r.weekDays.Days() {
			opt.Byweekday = append(opt.Byweekday, toRRuleWeekday[d])
		}
	case KindMonthly:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = r.monthDays.Days()
	case KindCustom:
		opt.Freq = rrule.DAILY
		opt.Interval = r.IntervalDays()
	default:
		opt.Freq = rrule.DAILY
	}
	return opt
}

// RRule builds an rrule-go rule anchored at dtstart.
func (r Rule) RRule(dtstart time.Time) (*rrule.RRule, error) {
	rule, err := rrule.NewRRule(r.ROption(dtstart))
	if err != nil {
		return nil, fmt.Errorf("failed to build RRULE for %s: %w", r, err)
	}
	return rule, nil
}

// RRuleString is the RRULE value (without "RRULE:" prefix or DTSTART).
func (r Rule) RRuleString() string {
	opt := r.ROption(time.Time{})
	return opt.RRuleString()
}

// ParseRRule converts an RRULE value back into a Rule. Only the subset
// produced by RRuleString is accepted: DAILY with an optional INTERVAL,
// WEEKLY with optional BYDAY, MONTHLY with optional positive BYMONTHDAY.
func ParseRRule(value string) (Rule, error) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "RRULE:")

	opt, err := rrule.StrToROption(value)
	if err != nil {
		return Rule{}, newError(ErrInvalidRule, fmt.Sprintf("failed to parse RRULE '%s'", value), err)
	}
	if opt.Count != 0 || !opt.Until.IsZero() || len(opt.Bysetpos) > 0 || len(opt.Bymonth) > 0 {
		return Rule{}, newError(ErrInvalidRule, fmt.Sprintf("unsupported RRULE parts in '%s'", value), nil)
	}

	switch opt.Freq {
	case rrule.DAILY:
		if opt.Interval == 0 {
			return Daily(), nil
		}
		return Custom(opt.Interval)

	case rrule.WEEKLY:
		if opt.Interval > 1 {
			return Rule{}, newError(ErrInvalidRule, "weekly interval is not supported", nil)
		}
		days := make([]time.Weekday, 0, len(opt.Byweekday))
		for _, wd := range opt.Byweekday {
			if wd.N() != 0 {
				return Rule{}, newError(ErrInvalidRule, fmt.Sprintf("positional BYDAY %s is not supported", wd.String()), nil)
			}
			// rrule-go numbers weekdays from Monday
			days = append(days, time.Weekday((wd.Day()+1)%7))
		}
		return Weekly(days...)

	case rrule.MONTHLY:
		if opt.Interval > 1 {
			return Rule{}, newError(ErrInvalidRule, "monthly interval is not supported", nil)
		}
		return Monthly(opt.Bymonthday...)

	default:
		return Rule{}, newError(ErrInvalidRule, fmt.Sprintf("unsupported frequency: %v", opt.Freq), nil)
	}
}

// ROption expresses the offset as an RRULE with the matching frequency and
// interval.
func (o FixedOffset) ROption(dtstart time.Time) rrule.ROption {
	opt := rrule.ROption{Dtstart: dtstart, Interval: o.Amount}
	switch o.Unit {
	case UnitWeeks:
		opt.Freq = rrule.WEEKLY
	case UnitMonths:
		opt.Freq = rrule.MONTHLY
	case UnitYears:
		opt.Freq = rrule.YEARLY
	default:
		opt.Freq = rrule.DAILY
	}
	return opt
}

// RRuleString is the RRULE value for the offset.
func (o FixedOffset) RRuleString() string {
	opt := o.ROption(time.Time{})
	return opt.RRuleString()
}
