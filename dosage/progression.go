package dosage

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode is the direction of a progression.
type Mode int

const (
	Stable Mode = iota
	Increase
	Decrease
)

var modeNames = [...]string{
	Stable:   "stable",
	Increase: "increase",
	Decrease: "decrease",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts "stable", "increase" or "decrease".
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return 0, &Error{Type: ErrInvalidProgression, Message: fmt.Sprintf("unknown progression mode %q", s)}
}

// Progression adjusts a base dosage by Rate every Interval doses.
type Progression struct {
	Mode     Mode
	Rate     Rate
	Interval int
	// Target bounds the progression when set.
	Target *Dosage
}

// Step is one dose of a preview.
type Step struct {
	DoseNumber int
	Dosage     Dosage
}

// Validate checks the parts of p that At depends on.
func (p Progression) Validate() error {
	if p.Mode == Stable {
		return nil
	}
	if p.Mode != Increase && p.Mode != Decrease {
		return &Error{Type: ErrInvalidProgression, Message: fmt.Sprintf("unknown progression mode %v", p.Mode)}
	}
	if p.Interval <= 0 {
		return &Error{Type: ErrInvalidProgression, Message: fmt.Sprintf("interval %d must be positive", p.Interval)}
	}
	if p.Rate.Value.IsNegative() {
		return &Error{Type: ErrInvalidProgression, Message: fmt.Sprintf("rate %v must not be negative", p.Rate)}
	}
	return nil
}

// At returns the dosage after doseCount doses have been given. Adjustments
// happen every Interval doses; percentages are relative to base.
func (p Progression) At(base Dosage, doseCount int) (Dosage, error) {
	if err := p.Validate(); err != nil {
		return Dosage{}, err
	}
	if p.Mode == Stable {
		return base, nil
	}

	adjustments := doseCount / p.Interval
	if adjustments <= 0 {
		return base, nil
	}

	if !p.Rate.Percent && p.Rate.Unit != "" && p.Rate.Unit != base.Unit {
		return Dosage{}, &Error{
			Type:    ErrUnitMismatch,
			Message: fmt.Sprintf("progression rate unit (%s) doesn't match dosage unit (%s)", p.Rate.Unit, base.Unit),
		}
	}

	step := p.Rate.Value
	if p.Rate.Percent {
		step = base.Value.Mul(p.Rate.Value.Shift(-2))
	}
	if p.Mode == Decrease {
		step = step.Neg()
	}

	value := base.Value.Add(step.Mul(decimal.NewFromInt(int64(adjustments))))
	if value.IsNegative() {
		value = decimal.Zero
	}

	if p.Target != nil {
		switch {
		case p.Mode == Increase && value.GreaterThan(p.Target.Value):
			value = p.Target.Value
		case p.Mode == Decrease && value.LessThan(p.Target.Value):
			value = p.Target.Value
		}
	}

	return Dosage{Value: value, Unit: base.Unit}, nil
}

// Preview lists the next n doses after currentDoseCount with their dosage.
// Dose numbers are 1-based.
func (p Progression) Preview(base Dosage, currentDoseCount, n int) ([]Step, error) {
	steps := make([]Step, 0, max(n, 0))
	for i := 0; i < n; i++ {
		doseNumber := currentDoseCount + i + 1
		d, err := p.At(base, doseNumber-1)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{DoseNumber: doseNumber, Dosage: d})
	}
	return steps, nil
}

// ReachedTarget reports whether the dosage after doseCount doses is at or
// beyond Target. It is always false for a stable progression or one
// without a target.
func (p Progression) ReachedTarget(base Dosage, doseCount int) (bool, error) {
	if p.Target == nil || p.Mode == Stable {
		return false, nil
	}

	current, err := p.At(base, doseCount)
	if err != nil {
		return false, err
	}
	if p.Mode == Increase {
		return current.Value.GreaterThanOrEqual(p.Target.Value), nil
	}
	return current.Value.LessThanOrEqual(p.Target.Value), nil
}
