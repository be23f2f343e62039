package stay

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyp0633/caresched/internal/locale"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculator_DayCount(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{"same day", date(2024, 1, 15), date(2024, 1, 15), 1},
		{"three days", date(2024, 1, 15), date(2024, 1, 17), 3},
		{"time of day ignored",
			time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 17, 18, 30, 0, 0, time.UTC), 3},
		{"late check-in same day", time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC), date(2024, 1, 15), 1},
		{"inverted floors at one", date(2024, 1, 17), date(2024, 1, 15), 1},
		{"across leap day", date(2024, 2, 28), date(2024, 3, 1), 3},
		{"across year end", date(2023, 12, 30), date(2024, 1, 2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, calc.DayCount(tt.checkIn, tt.checkOut))
		})
	}
}

func TestCalculator_DayCountAcrossDST(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	calc := NewCalculatorWithConfig(Config{Location: newYork})

	// 2024-03-10 is 23 hours long in New York
	in := time.Date(2024, 3, 9, 12, 0, 0, 0, newYork)
	out := time.Date(2024, 3, 11, 8, 0, 0, 0, newYork)
	assert.Equal(t, 3, calc.DayCount(in, out))
	assert.Len(t, calc.CoveredDateList(in, out), 3)
}

func TestCalculator_MidnightGap(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	calc := NewCalculatorWithConfig(Config{Location: santiago})

	// 2024-09-08 has no 00:00 in Santiago
	in := time.Date(2024, 9, 8, 10, 0, 0, 0, santiago)
	out := time.Date(2024, 9, 9, 10, 0, 0, 0, santiago)
	assert.Equal(t, 2, calc.DayCount(in, out))

	dates := calc.CoveredDateList(in, out)
	require.Len(t, dates, 2)
	assert.Equal(t, 8, dates[0].Day())
	assert.Equal(t, 9, dates[1].Day())
	assert.True(t, calc.Contains(time.Date(2024, 9, 8, 3, 0, 0, 0, santiago), in, out))
	assert.False(t, calc.Contains(time.Date(2024, 9, 7, 23, 0, 0, 0, santiago), in, out))

	period, err := calc.Validate(time.Date(2024, 9, 7, 12, 0, 0, 0, santiago), out).Get()
	require.NoError(t, err)
	assert.Equal(t, 7, period.CheckIn.Day())
	assert.Equal(t, 9, period.CheckOut.Day())
}

func TestCalculator_CoveredDates(t *testing.T) {
	calc := NewCalculator()

	t.Run("inclusive ascending", func(t *testing.T) {
		got := calc.CoveredDateList(date(2024, 1, 30), time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC))
		assert.Equal(t, []time.Time{
			date(2024, 1, 30),
			date(2024, 1, 31),
			date(2024, 2, 1),
			date(2024, 2, 2),
		}, got)
	})

	t.Run("single day", func(t *testing.T) {
		assert.Equal(t, []time.Time{date(2024, 1, 15)}, calc.CoveredDateList(date(2024, 1, 15), date(2024, 1, 15)))
	})

	t.Run("inverted is empty while day count is one", func(t *testing.T) {
		assert.Empty(t, calc.CoveredDateList(date(2024, 1, 17), date(2024, 1, 15)))
		assert.Equal(t, 1, calc.DayCount(date(2024, 1, 17), date(2024, 1, 15)))
	})

	t.Run("length matches day count", func(t *testing.T) {
		start := date(2024, 1, 1)
		for span := 0; span < 120; span += 7 {
			end := start.AddDate(0, 0, span)
			assert.Len(t, calc.CoveredDateList(start, end), calc.DayCount(start, end))
		}
	})

	t.Run("restartable", func(t *testing.T) {
		seq := calc.CoveredDates(date(2024, 1, 1), date(2024, 1, 3))
		var n int
		for range seq {
			n++
		}
		for range seq {
			n++
		}
		assert.Equal(t, 6, n)
	})
}

func TestCalculator_Contains(t *testing.T) {
	calc := NewCalculator()
	in, out := date(2024, 1, 15), date(2024, 1, 17)

	assert.True(t, calc.Contains(in, in, out))
	assert.True(t, calc.Contains(out, in, out))
	assert.True(t, calc.Contains(time.Date(2024, 1, 17, 23, 0, 0, 0, time.UTC), in, out))
	assert.True(t, calc.Contains(date(2024, 1, 16), in, out))
	assert.False(t, calc.Contains(date(2024, 1, 14), in, out))
	assert.False(t, calc.Contains(date(2024, 1, 18), in, out))
	assert.False(t, calc.Contains(date(2024, 1, 16), out, in))
}

func TestCalculator_Format(t *testing.T) {
	pt := NewCalculator()
	en := NewCalculatorWithConfig(Config{Locale: locale.English})

	assert.Equal(t, "15/01 a 17/01 (3 diárias)", pt.Format(date(2024, 1, 15), date(2024, 1, 17), 3))
	assert.Equal(t, "15/01 a 15/01 (1 diária)", pt.Format(date(2024, 1, 15), date(2024, 1, 15), 1))
	assert.Equal(t, "01/15 to 01/17 (3 days)", en.Format(date(2024, 1, 15), date(2024, 1, 17), 3))
	assert.Equal(t, "01/15 to 01/15 (1 day)", en.Format(date(2024, 1, 15), date(2024, 1, 15), 1))
}

func TestCalculator_Validate(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		wantErr  error
	}{
		{"valid", date(2024, 1, 15), date(2024, 1, 17), nil},
		{"same day", date(2024, 1, 15), date(2024, 1, 15), nil},
		{"inverted", date(2024, 1, 17), date(2024, 1, 15), ErrOrdering},
		{"exactly ninety days", date(2024, 1, 1), date(2024, 3, 31), nil},
		{"ninety one days", date(2024, 1, 1), date(2024, 4, 1), ErrSpanTooLong},
		{"far too long", date(2024, 1, 1), date(2024, 4, 15), ErrSpanTooLong},
		{"same day later hour is valid",
			time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calc.Validate(tt.checkIn, tt.checkOut)
			if tt.wantErr == nil {
				require.True(t, result.IsOk(), "unexpected error: %v", result.Error())
				period := result.MustGet()
				assert.Equal(t, calc.Calendar().Midnight(tt.checkIn), period.CheckIn)
				assert.Equal(t, calc.Calendar().Midnight(tt.checkOut), period.CheckOut)
				return
			}

			require.True(t, result.IsError())
			assert.True(t, errors.Is(result.Error(), tt.wantErr))

			var verr *ValidationError
			require.True(t, errors.As(result.Error(), &verr))
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestCalculator_ValidateMessages(t *testing.T) {
	pt := NewCalculator()
	en := NewCalculatorWithConfig(Config{Locale: locale.English, MaxSpanDays: 30})

	var verr *ValidationError
	require.True(t, errors.As(pt.Validate(date(2024, 1, 17), date(2024, 1, 15)).Error(), &verr))
	assert.Equal(t, "Data de check-out deve ser posterior à data de check-in", verr.Message)

	require.True(t, errors.As(pt.Validate(date(2024, 1, 1), date(2024, 6, 1)).Error(), &verr))
	assert.Equal(t, "Período não pode exceder 90 dias", verr.Message)

	require.True(t, errors.As(en.Validate(date(2024, 1, 1), date(2024, 2, 1)).Error(), &verr))
	assert.Equal(t, "stay cannot exceed 30 days", verr.Message)
	assert.Equal(t, 31, verr.SpanDays)
}

func TestCalculator_Summarize(t *testing.T) {
	calc := NewCalculator()

	summary, err := calc.Summarize(date(2024, 1, 15), time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)).Get()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Days)
	assert.Equal(t, date(2024, 1, 17), summary.CheckOut)
	assert.Len(t, summary.Dates, 3)
	assert.Equal(t, "15/01 a 17/01 (3 diárias)", summary.Label)

	_, err = calc.Summarize(date(2024, 1, 17), date(2024, 1, 15)).Get()
	assert.ErrorIs(t, err, ErrOrdering)
}
