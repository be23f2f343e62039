package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyp0633/caresched/recurrence"
)

const dateLayout = "2006-01-02"

// ruleFlags collects a periodicity rule from the command line.
type ruleFlags struct {
	kind      string
	weekDays  []int
	monthDays []int
	interval  int
	json      string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.kind, "rule", "daily", "periodicity (daily, weekly, monthly, custom)")
	flags.IntSliceVar(&f.weekDays, "week-days", nil, "weekdays for a weekly rule, 0=Sunday..6=Saturday")
	flags.IntSliceVar(&f.monthDays, "month-days", nil, "days of month for a monthly rule")
	flags.IntVar(&f.interval, "interval", 0, "interval in days for a custom rule")
	flags.StringVar(&f.json, "rule-json", "", `rule in JSON form, e.g. {"kind":"weekly","weekDays":[1,3]}`)
}

func (f *ruleFlags) rule() (recurrence.Rule, error) {
	if f.json != "" {
		return recurrence.ParseRule(f.json)
	}

	kind, err := recurrence.ParseKind(f.kind)
	if err != nil {
		return recurrence.Rule{}, err
	}
	switch kind {
	case recurrence.KindWeekly:
		days := make([]time.Weekday, len(f.weekDays))
		for i, d := range f.weekDays {
			days[i] = time.Weekday(d)
		}
		return recurrence.Weekly(days...)
	case recurrence.KindMonthly:
		return recurrence.Monthly(f.monthDays...)
	case recurrence.KindCustom:
		return recurrence.Custom(f.interval)
	default:
		return recurrence.Daily(), nil
	}
}

// offsetFlags collects a fixed offset from the command line.
type offsetFlags struct {
	unit   string
	amount int
}

func (f *offsetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.unit, "unit", "", "offset unit (days, weeks, months, years)")
	cmd.Flags().IntVar(&f.amount, "amount", 0, "offset amount")
}

// excludeRuleWithOffset rejects commands that mix rule flags with a fixed
// offset. Both flag sets must already be registered on cmd.
func excludeRuleWithOffset(cmd *cobra.Command) {
	for _, offset := range []string{"unit", "amount"} {
		for _, rule := range []string{"rule", "week-days", "month-days", "interval", "rule-json"} {
			cmd.MarkFlagsMutuallyExclusive(offset, rule)
		}
	}
}

func (f *offsetFlags) set() bool {
	return f.unit != ""
}

func (f *offsetFlags) offset() (recurrence.FixedOffset, error) {
	unit, err := recurrence.ParseUnit(f.unit)
	if err != nil {
		return recurrence.FixedOffset{}, err
	}
	return recurrence.NewFixedOffset(unit, f.amount)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. Calendar dates
// are interpreted in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

func (a *app) parseDates(args []string) ([]time.Time, error) {
	dates := make([]time.Time, len(args))
	for i, arg := range args {
		d, err := parseDate(arg, a.cfg.Location())
		if err != nil {
			return nil, err
		}
		dates[i] = d
	}
	return dates, nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(dateLayout)
	}
	return out
}

// print writes v as indented JSON in json mode, otherwise the text lines.
func (a *app) print(w io.Writer, v any, lines ...string) error {
	if a.output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
