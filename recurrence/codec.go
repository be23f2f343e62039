package recurrence

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Record mirrors how a medication or treatment row persists its periodicity:
// the day lists are JSON arrays stored as text.
type Record struct {
	Periodicity    string `json:"periodicity"`
	CustomInterval *int   `json:"customInterval,omitempty"`
	WeekDays       string `json:"weekDays,omitempty"`
	MonthDays      string `json:"monthDays,omitempty"`
}

// RuleFromRecord converts a persisted row into a Rule. Malformed day lists
// degrade to "no constraint"; only an unknown periodicity or a negative
// custom interval is an error.
func RuleFromRecord(rec Record) (Rule, error) {
	kind, err := ParseKind(rec.Periodicity)
	if err != nil {
		return Rule{}, err
	}

	switch kind {
	case KindWeekly:
		return WeeklyOn(DecodeWeekDays(rec.WeekDays)), nil
	case KindMonthly:
		return MonthlyOn(DecodeMonthDays(rec.MonthDays)), nil
	case KindCustom:
		interval := 0
		if rec.CustomInterval != nil {
			interval = *rec.CustomInterval
		}
		return Custom(interval)
	default:
		return Daily(), nil
	}
}

// Record converts the rule back into its persisted form.
func (r Rule) Record() Record {
	rec := Record{Periodicity: r.kind.String()}
	switch r.kind {
	case KindWeekly:
		rec.WeekDays = EncodeWeekDays(r.weekDays)
	case KindMonthly:
		rec.MonthDays = EncodeMonthDays(r.monthDays)
	case KindCustom:
		interval := r.IntervalDays()
		rec.CustomInterval = &interval
	}
	return rec
}

// DecodeWeekDays parses a persisted weekday list such as "[1,3]". Anything
// that is not an array of integers in [0,6] yields the empty set.
func DecodeWeekDays(text string) WeekdaySet {
	values, ok := decodeIntList([]byte(text))
	if !ok {
		return 0
	}
	days := make([]time.Weekday, len(values))
	for i, v := range values {
		days[i] = time.Weekday(v)
	}
	set, err := NewWeekdaySet(days...)
	if err != nil {
		return 0
	}
	return set
}

// DecodeMonthDays parses a persisted day-of-month list such as "[1,15]".
// Anything that is not an array of integers in [1,31] yields the empty set.
func DecodeMonthDays(text string) MonthDaySet {
	values, ok := decodeIntList([]byte(text))
	if !ok {
		return 0
	}
	set, err := NewMonthDaySet(values...)
	if err != nil {
		return 0
	}
	return set
}

// EncodeWeekDays renders the set as a JSON array, or "" when empty.
func EncodeWeekDays(s WeekdaySet) string {
	if s.Empty() {
		return ""
	}
	days := s.Days()
	values := make([]int, len(days))
	for i, d := range days {
		values[i] = int(d)
	}
	return encodeIntList(values)
}

// EncodeMonthDays renders the set as a JSON array, or "" when empty.
func EncodeMonthDays(s MonthDaySet) string {
	if s.Empty() {
		return ""
	}
	return encodeIntList(s.Days())
}

func encodeIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// decodeIntList accepts exactly one JSON array of integers.
func decodeIntList(data []byte) ([]int, bool) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}

	values := make([]int, 0, len(raw))
	for _, item := range raw {
		n, ok := item.(json.Number)
		if !ok {
			return nil, false
		}
		v, err := n.Int64()
		if err != nil {
			return nil, false
		}
		values = append(values, int(v))
	}
	return values, true
}

type ruleJSON struct {
	Kind               string          `json:"kind"`
	CustomIntervalDays int             `json:"customIntervalDays,omitempty"`
	WeekDays           json.RawMessage `json:"weekDays,omitempty"`
	MonthDays          json.RawMessage `json:"monthDays,omitempty"`
}

// MarshalJSON encodes the rule as a tagged object carrying only the fields
// of its kind, e.g. {"kind":"weekly","weekDays":[1,3]}.
func (r Rule) MarshalJSON() ([]byte, error) {
	out := ruleJSON{Kind: r.kind.String()}
	switch r.kind {
	case KindWeekly:
		if s := EncodeWeekDays(r.weekDays); s != "" {
			out.WeekDays = json.RawMessage(s)
		}
	case KindMonthly:
		if s := EncodeMonthDays(r.monthDays); s != "" {
			out.MonthDays = json.RawMessage(s)
		}
	case KindCustom:
		out.CustomIntervalDays = r.IntervalDays()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the tagged form. Day lists decode fail-open like
// the persisted text columns.
func (r *Rule) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var in ruleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return newError(ErrInvalidRule, "malformed rule", err)
	}

	kind, err := ParseKind(in.Kind)
	if err != nil {
		return err
	}

	var rule Rule
	switch kind {
	case KindWeekly:
		rule = WeeklyOn(DecodeWeekDays(string(in.WeekDays)))
	case KindMonthly:
		rule = MonthlyOn(DecodeMonthDays(string(in.MonthDays)))
	case KindCustom:
		if rule, err = Custom(in.CustomIntervalDays); err != nil {
			return err
		}
	default:
		rule = Daily()
	}

	*r = rule
	return nil
}

// ParseRule accepts either the JSON tagged form or a bare kind name such as
// "daily".
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") {
		var r Rule
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			return Rule{}, fmt.Errorf("parse rule: %w", err)
		}
		return r, nil
	}
	return RuleFromRecord(Record{Periodicity: s})
}
