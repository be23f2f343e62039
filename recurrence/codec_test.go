package recurrence

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWeekDays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []time.Weekday
	}{
		{"valid list", "[1,3]", []time.Weekday{time.Monday, time.Wednesday}},
		{"unordered with duplicates", "[5, 1, 5]", []time.Weekday{time.Monday, time.Friday}},
		{"empty text", "", nil},
		{"empty array", "[]", nil},
		{"not json", "abc", nil},
		{"object", `{"a":1}`, nil},
		{"string entries", `["1","3"]`, nil},
		{"fractional entry", "[1.5]", nil},
		{"out of range entry poisons the list", "[1,9]", nil},
		{"negative entry", "[-1]", nil},
		{"trailing content", "[1][2]", nil},
		{"null", "null", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := DecodeWeekDays(tt.input)
			if tt.expected == nil {
				assert.True(t, set.Empty(), "expected empty set, got %v", set.Days())
				return
			}
			assert.Equal(t, tt.expected, set.Days())
		})
	}
}

func TestDecodeMonthDays(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []int
	}{
		{"valid list", "[1,15]", []int{1, 15}},
		{"boundaries", "[31,1]", []int{1, 31}},
		{"zero entry", "[0,15]", nil},
		{"above 31", "[32]", nil},
		{"garbage", "[1,", nil},
		{"blank", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := DecodeMonthDays(tt.input)
			if tt.expected == nil {
				assert.True(t, set.Empty())
				return
			}
			assert.Equal(t, tt.expected, set.Days())
		})
	}
}

func TestEncodeDayLists(t *testing.T) {
	week, err := NewWeekdaySet(time.Wednesday, time.Monday)
	require.NoError(t, err)
	month, err := NewMonthDaySet(15, 1)
	require.NoError(t, err)

	assert.Equal(t, "[1,3]", EncodeWeekDays(week))
	assert.Equal(t, "[1,15]", EncodeMonthDays(month))
	assert.Equal(t, "", EncodeWeekDays(0))
	assert.Equal(t, "", EncodeMonthDays(0))
}

func TestRuleFromRecord(t *testing.T) {
	interval := 10

	tests := []struct {
		name     string
		record   Record
		expected Rule
		errType  ErrorType
	}{
		{
			name:     "daily",
			record:   Record{Periodicity: "daily"},
			expected: Daily(),
		},
		{
			name:     "weekly with days",
			record:   Record{Periodicity: "weekly", WeekDays: "[1,3]"},
			expected: WeeklyOn(1<<time.Monday | 1<<time.Wednesday),
		},
		{
			name:     "weekly with corrupt days has no constraint",
			record:   Record{Periodicity: "weekly", WeekDays: "oops"},
			expected: WeeklyOn(0),
		},
		{
			name:     "monthly with days",
			record:   Record{Periodicity: "monthly", MonthDays: "[5]"},
			expected: MonthlyOn(1 << 5),
		},
		{
			name:     "custom with interval",
			record:   Record{Periodicity: "custom", CustomInterval: &interval},
			expected: Rule{kind: KindCustom, interval: 10},
		},
		{
			name:     "custom without interval defaults to one day",
			record:   Record{Periodicity: "custom"},
			expected: Rule{kind: KindCustom, interval: 1},
		},
		{
			name:    "unknown periodicity",
			record:  Record{Periodicity: "hourly"},
			errType: ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RuleFromRecord(tt.record)
			if tt.errType != "" {
				require.Error(t, err)
				assert.True(t, IsErrorType(err, tt.errType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRuleRecordRoundTrip(t *testing.T) {
	must := mustRule(t)
	rules := []Rule{
		Daily(),
		must(Weekly()),
		must(Weekly(time.Sunday, time.Saturday)),
		must(Monthly()),
		must(Monthly(1, 15, 31)),
		must(Custom(14)),
	}

	for _, rule := range rules {
		got, err := RuleFromRecord(rule.Record())
		require.NoError(t, err)
		assert.Equal(t, rule, got, rule.String())
	}
}

func TestRuleJSON(t *testing.T) {
	rule, err := Weekly(time.Monday, time.Wednesday)
	require.NoError(t, err)

	data, err := json.Marshal(rule)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"weekly","weekDays":[1,3]}`, string(data))

	custom, err := Custom(7)
	require.NoError(t, err)
	data, err = json.Marshal(custom)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"custom","customIntervalDays":7}`, string(data))

	var decoded Rule
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"monthly","monthDays":[30]}`), &decoded))
	assert.Equal(t, Rule{kind: KindMonthly, monthDays: 1 << 30}, decoded)

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"monthly","monthDays":[0,30]}`), &decoded))
	assert.Equal(t, MonthlyOn(0), decoded)

	err = json.Unmarshal([]byte(`{"kind":"yearly"}`), &decoded)
	assert.True(t, IsErrorType(err, ErrInvalidRule))

	err = json.Unmarshal([]byte(`{"kind":"custom","customIntervalDays":-1}`), &decoded)
	assert.True(t, IsErrorType(err, ErrInvalidRule))
}

func TestRuleJSONInsideStruct(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Rule Rule   `json:"rule"`
	}

	in := payload{Name: "Vermífugo", Rule: Rule{kind: KindCustom, interval: 90}}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestParseRule(t *testing.T) {
	got, err := ParseRule("weekly")
	require.NoError(t, err)
	assert.Equal(t, WeeklyOn(0), got)

	got, err = ParseRule(` {"kind":"weekly","weekDays":[2]} `)
	require.NoError(t, err)
	assert.Equal(t, WeeklyOn(1<<time.Tuesday), got)

	_, err = ParseRule("{broken")
	assert.Error(t, err)
}
