package stay

import (
	"log/slog"
	"time"

	"github.com/cyp0633/caresched/internal/calendar"
	"github.com/cyp0633/caresched/internal/locale"
	"github.com/cyp0633/caresched/internal/logging"
)

// DefaultMaxSpanDays is the longest stay accepted by Validate.
const DefaultMaxSpanDays = 90

// Config holds configuration options for the stay calculator
type Config struct {
	// Location is the reference timezone. Nil means UTC.
	Location *time.Location

	// Locale renders Format and validation messages. The zero value means
	// PortugueseBrazil.
	Locale locale.Locale

	// MaxSpanDays is the largest accepted difference between check-in and
	// check-out, inclusive. Zero means DefaultMaxSpanDays.
	MaxSpanDays int

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultConfig provides the daycare defaults
var DefaultConfig = Config{
	Location:    time.UTC,
	Locale:      locale.PortugueseBrazil,
	MaxSpanDays: DefaultMaxSpanDays,
}

// NewCalculatorWithConfig creates a calculator with custom configuration
func NewCalculatorWithConfig(config Config) *Calculator {
	if config.Locale.IsZero() {
		config.Locale = locale.PortugueseBrazil
	}
	if config.MaxSpanDays <= 0 {
		config.MaxSpanDays = DefaultMaxSpanDays
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Calculator{
		cal:    calendar.New(config.Location),
		config: config,
		logger: logger,
	}
}
