package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleRRuleString(t *testing.T) {
	must := mustRule(t)

	assert.Equal(t, "FREQ=DAILY", Daily().RRuleString())
	assert.Equal(t, "FREQ=DAILY;INTERVAL=7", must(Custom(7)).RRuleString())
	assert.Equal(t, "FREQ=WEEKLY", must(Weekly()).RRuleString())

	weekly := must(Weekly(time.Monday, time.Wednesday)).RRuleString()
	assert.Contains(t, weekly, "FREQ=WEEKLY")
	assert.Contains(t, weekly, "BYDAY=MO,WE")

	monthly := must(Monthly(1, 15)).RRuleString()
	assert.Contains(t, monthly, "FREQ=MONTHLY")
	assert.Contains(t, monthly, "BYMONTHDAY=1,15")
}

func TestParseRRuleRoundTrip(t *testing.T) {
	must := mustRule(t)
	rules := []Rule{
		Daily(),
		must(Custom(1)),
		must(Custom(3)),
		must(Weekly()),
		must(Weekly(time.Sunday)),
		must(Weekly(time.Monday, time.Wednesday, time.Saturday)),
		must(Monthly()),
		must(Monthly(1, 15, 31)),
	}

	for _, rule := range rules {
		t.Run(rule.String(), func(t *testing.T) {
			got, err := ParseRRule("RRULE:" + rule.RRuleString())
			require.NoError(t, err)
			assert.Equal(t, rule, got)
		})
	}
}

func TestParseRRuleRejectsUnsupported(t *testing.T) {
	inputs := []string{
		"FREQ=YEARLY",
		"FREQ=HOURLY",
		"FREQ=DAILY;COUNT=3",
		"FREQ=WEEKLY;INTERVAL=2",
		"FREQ=WEEKLY;BYDAY=1MO",
		"FREQ=MONTHLY;BYSETPOS=1;BYDAY=MO",
		"FREQ=MONTHLY;BYMONTHDAY=-1",
		"NOT A RULE",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRRule(input)
			require.Error(t, err)
			assert.True(t, IsErrorType(err, ErrInvalidRule), "got %v", err)
		})
	}
}

// rrule-go applies the same skip-the-month semantics for BYMONTHDAY, so it
// serves as an independent oracle for listed-day rules.
func TestNextOccurrenceMatchesRRule(t *testing.T) {
	engine := NewEngine()
	must := mustRule(t)
	rules := []Rule{
		Daily(),
		must(Custom(5)),
		must(Weekly(time.Monday, time.Wednesday)),
		must(Weekly(time.Sunday, time.Friday, time.Saturday)),
		must(Monthly(30)),
		must(Monthly(29, 31)),
		must(Monthly(1, 15)),
	}

	for _, rule := range rules {
		t.Run(rule.String(), func(t *testing.T) {
			for d := date(2023, 12, 1); d.Before(date(2025, 1, 1)); d = d.AddDate(0, 0, 1) {
				rr, err := rule.RRule(d)
				require.NoError(t, err)

				want := rr.After(d, false)
				got := engine.NextOccurrence(d, rule)
				require.True(t, want.Equal(got), "from %v: rrule %v, engine %v", d, want, got)
			}
		})
	}
}

func TestFixedOffsetRRuleString(t *testing.T) {
	offset, err := NewFixedOffset(UnitMonths, 3)
	require.NoError(t, err)
	assert.Equal(t, "FREQ=MONTHLY;INTERVAL=3", offset.RRuleString())

	offset, err = NewFixedOffset(UnitYears, 1)
	require.NoError(t, err)
	assert.Equal(t, "FREQ=YEARLY;INTERVAL=1", offset.RRuleString())
}
