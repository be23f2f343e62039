package recurrence

import (
	"fmt"
	"math/bits"
	"strings"
	"time"
)

// Kind selects how a periodicity rule repeats.
type Kind int

const (
	KindDaily Kind = iota
	KindWeekly
	KindMonthly
	KindCustom
)

var kindNames = [...]string{
	KindDaily:   "daily",
	KindWeekly:  "weekly",
	KindMonthly: "monthly",
	KindCustom:  "custom",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts the persisted periodicity names, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, newError(ErrInvalidRule, fmt.Sprintf("unknown periodicity %q", s), nil)
}

// WeekdaySet is a set of weekdays, Sunday through Saturday. Iteration order
// is always ascending, which keeps resolution deterministic.
type WeekdaySet uint8

// NewWeekdaySet builds a set, rejecting values outside Sunday..Saturday.
func NewWeekdaySet(days ...time.Weekday) (WeekdaySet, error) {
	var s WeekdaySet
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			return 0, newError(ErrInvalidRule, fmt.Sprintf("weekday %d out of range [0,6]", int(d)), nil)
		}
		s |= 1 << uint(d)
	}
	return s, nil
}

// Has reports whether d is in the set.
func (s WeekdaySet) Has(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday && s&(1<<uint(d)) != 0
}

// Empty reports whether the set constrains nothing.
func (s WeekdaySet) Empty() bool {
	return s == 0
}

// Days lists the members in ascending order.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, bits.OnesCount8(uint8(s)))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// first returns the smallest member. Only meaningful on a non-empty set.
func (s WeekdaySet) first() time.Weekday {
	return time.Weekday(bits.TrailingZeros8(uint8(s)))
}

// after returns the smallest member strictly greater than d.
func (s WeekdaySet) after(d time.Weekday) (time.Weekday, bool) {
	rest := uint8(s) >> uint(d+1)
	if rest == 0 {
		return 0, false
	}
	return d + 1 + time.Weekday(bits.TrailingZeros8(rest)), true
}

// MonthDaySet is a set of days of the month, 1 through 31.
type MonthDaySet uint32

// NewMonthDaySet builds a set, rejecting values outside 1..31.
func NewMonthDaySet(days ...int) (MonthDaySet, error) {
	var s MonthDaySet
	for _, d := range days {
		if d < 1 || d > 31 {
			return 0, newError(ErrInvalidRule, fmt.Sprintf("day of month %d out of range [1,31]", d), nil)
		}
		s |= 1 << uint(d)
	}
	return s, nil
}

// Has reports whether day is in the set.
func (s MonthDaySet) Has(day int) bool {
	return day >= 1 && day <= 31 && s&(1<<uint(day)) != 0
}

// Empty reports whether the set constrains nothing.
func (s MonthDaySet) Empty() bool {
	return s == 0
}

// Days lists the members in ascending order.
func (s MonthDaySet) Days() []int {
	days := make([]int, 0, bits.OnesCount32(uint32(s)))
	for d := 1; d <= 31; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s MonthDaySet) first() int {
	return bits.TrailingZeros32(uint32(s))
}

func (s MonthDaySet) after(day int) (int, bool) {
	if day >= 31 {
		return 0, false
	}
	rest := uint32(s) >> uint(day+1)
	if rest == 0 {
		return 0, false
	}
	return day + 1 + bits.TrailingZeros32(rest), true
}

// Rule describes how a recurring event such as a medication dose repeats.
// Fields are only reachable through the constructors and decoders, so a Rule
// is always well formed. Rules are comparable with ==. The zero value is a
// daily rule.
type Rule struct {
	kind      Kind
	interval  int
	weekDays  WeekdaySet
	monthDays MonthDaySet
}

// Daily repeats every day.
func Daily() Rule {
	return Rule{kind: KindDaily}
}

// Weekly repeats on the listed weekdays, or every 7 days when none are given.
func Weekly(days ...time.Weekday) (Rule, error) {
	set, err := NewWeekdaySet(days...)
	if err != nil {
		return Rule{}, err
	}
	return Rule{kind: KindWeekly, weekDays: set}, nil
}

// WeeklyOn is Weekly for an already validated set.
func WeeklyOn(days WeekdaySet) Rule {
	return Rule{kind: KindWeekly, weekDays: days}
}

// Monthly repeats on the listed days of the month, or on the same day of the
// next month when none are given.
func Monthly(days ...int) (Rule, error) {
	set, err := NewMonthDaySet(days...)
	if err != nil {
		return Rule{}, err
	}
	return Rule{kind: KindMonthly, monthDays: set}, nil
}

// MonthlyOn is Monthly for an already validated set.
func MonthlyOn(days MonthDaySet) Rule {
	return Rule{kind: KindMonthly, monthDays: days}
}

// Custom repeats every intervalDays days. Zero means the default of 1.
func Custom(intervalDays int) (Rule, error) {
	if intervalDays < 0 {
		return Rule{}, newError(ErrInvalidRule, fmt.Sprintf("custom interval %d must not be negative", intervalDays), nil)
	}
	if intervalDays == 0 {
		intervalDays = 1
	}
	return Rule{kind: KindCustom, interval: intervalDays}, nil
}

// Kind returns the variant of the rule.
func (r Rule) Kind() Kind {
	return r.kind
}

// IntervalDays returns the effective custom interval, at least 1.
func (r Rule) IntervalDays() int {
	if r.interval < 1 {
		return 1
	}
	return r.interval
}

// WeekDays returns the weekday constraint of a weekly rule.
func (r Rule) WeekDays() WeekdaySet {
	return r.weekDays
}

// MonthDays returns the day-of-month constraint of a monthly rule.
func (r Rule) MonthDays() MonthDaySet {
	return r.monthDays
}

// String is a stable, locale-independent debug form.
func (r Rule) String() string {
	switch r.kind {
	case KindWeekly:
		if r.weekDays.Empty() {
			return "weekly"
		}
		return fmt.Sprintf("weekly%v", r.weekDays.Days())
	case KindMonthly:
		if r.monthDays.Empty() {
			return "monthly"
		}
		return fmt.Sprintf("monthly%v", r.monthDays.Days())
	case KindCustom:
		return fmt.Sprintf("custom(%dd)", r.IntervalDays())
	default:
		return r.kind.String()
	}
}

// Unit is the step of a fixed offset.
type Unit int

const (
	UnitDays Unit = iota
	UnitWeeks
	UnitMonths
	UnitYears
)

var unitNames = [...]string{
	UnitDays:   "days",
	UnitWeeks:  "weeks",
	UnitMonths: "months",
	UnitYears:  "years",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit accepts singular, plural and one-letter unit names.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "day", "d":
		return UnitDays, nil
	case "weeks", "week", "w":
		return UnitWeeks, nil
	case "months", "month", "m":
		return UnitMonths, nil
	case "years", "year", "y":
		return UnitYears, nil
	default:
		return 0, newError(ErrInvalidOffset, fmt.Sprintf("unsupported unit %q", s), nil)
	}
}

// FixedOffset is a flat re-application interval, e.g. every 3 months.
type FixedOffset struct {
	Unit   Unit
	Amount int
}

// NewFixedOffset validates unit and amount.
func NewFixedOffset(unit Unit, amount int) (FixedOffset, error) {
	if unit < UnitDays || unit > UnitYears {
		return FixedOffset{}, newError(ErrInvalidOffset, fmt.Sprintf("unsupported unit %v", unit), nil)
	}
	if amount <= 0 {
		return FixedOffset{}, newError(ErrInvalidOffset, fmt.Sprintf("amount %d must be positive", amount), nil)
	}
	return FixedOffset{Unit: unit, Amount: amount}, nil
}

func (o FixedOffset) String() string {
	return fmt.Sprintf("%d %s", o.Amount, o.Unit)
}

// ScheduledEvent is one recurring treatment to export: either Rule-driven or,
// when Offset is set, advanced by a fixed offset.
type ScheduledEvent struct {
	ID      string
	Name    string
	Start   time.Time
	Rule    Rule
	Offset  *FixedOffset
	Count   int
	Comment string
}
