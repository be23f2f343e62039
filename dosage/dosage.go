// Package dosage computes progressive and regressive medication doses.
//
// A progression adjusts a base dosage by a fixed rate every Interval doses,
// either as a percentage of the base or as an absolute amount in the same
// unit, never going below zero and never past an optional target.
package dosage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var dosagePattern = regexp.MustCompile(`^([\d.]+)\s*(.*)$`)

// Dosage is an amount with a free-form unit such as "mg", "ml" or
// "comprimidos". Units are lower case.
type Dosage struct {
	Value decimal.Decimal
	Unit  string
}

// Parse reads strings such as "10mg", "1.5 ml" or "2 comprimidos".
func Parse(s string) (Dosage, error) {
	m := dosagePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return Dosage{}, &Error{Type: ErrInvalidDosage, Message: fmt.Sprintf("invalid dosage format: %q", s)}
	}
	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return Dosage{}, &Error{Type: ErrInvalidDosage, Message: fmt.Sprintf("invalid dosage value: %q", s), Err: err}
	}
	return Dosage{Value: value, Unit: m[2]}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Dosage {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the value immediately followed by the unit, e.g. "12mg".
func (d Dosage) String() string {
	return d.Value.String() + d.Unit
}

// Rate is the adjustment applied once per interval.
type Rate struct {
	Value   decimal.Decimal
	Percent bool
	// Unit is empty for percentages and for unitless absolute rates.
	Unit string
}

// ParseRate reads "10%" as a percentage of the base dosage, anything else
// as an absolute dosage.
func ParseRate(s string) (Rate, error) {
	trimmed := strings.TrimSpace(s)
	if number, ok := strings.CutSuffix(trimmed, "%"); ok {
		value, err := decimal.NewFromString(strings.TrimSpace(number))
		if err != nil {
			return Rate{}, &Error{Type: ErrInvalidRate, Message: fmt.Sprintf("invalid progression rate: %q", s), Err: err}
		}
		return Rate{Value: value, Percent: true}, nil
	}

	d, err := Parse(trimmed)
	if err != nil {
		return Rate{}, &Error{Type: ErrInvalidRate, Message: fmt.Sprintf("invalid progression rate: %q", s), Err: err}
	}
	return Rate{Value: d.Value, Unit: d.Unit}, nil
}

func (r Rate) String() string {
	if r.Percent {
		return r.Value.String() + "%"
	}
	return r.Value.String() + r.Unit
}
