package recurrence

import (
	"strconv"

	"github.com/cyp0633/caresched/internal/locale"
)

// Describe renders a rule for caregivers, e.g. "Semanal: Seg, Qua".
func Describe(rule Rule, loc locale.Locale) string {
	switch rule.kind {
	case KindDaily:
		return loc.Sprintf(locale.MsgDaily)

	case KindWeekly:
		if rule.weekDays.Empty() {
			return loc.Sprintf(locale.MsgWeekly)
		}
		var names []string
		for _, d := range rule.weekDays.Days() {
			names = append(names, loc.Weekday(d))
		}
		return loc.Sprintf(locale.MsgWeeklyOn, loc.List(names))

	case KindMonthly:
		if rule.monthDays.Empty() {
			return loc.Sprintf(locale.MsgMonthly)
		}
		var days []string
		for _, d := range rule.monthDays.Days() {
			days = append(days, strconv.Itoa(d))
		}
		return loc.Sprintf(locale.MsgMonthlyOn, loc.List(days))

	case KindCustom:
		return loc.Sprintf(locale.MsgEveryNDays, rule.IntervalDays())

	default:
		return loc.Sprintf(locale.MsgNotConfigured)
	}
}
