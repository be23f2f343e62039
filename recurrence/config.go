package recurrence

import (
	"log/slog"
	"time"

	"github.com/cyp0633/caresched/internal/calendar"
	"github.com/cyp0633/caresched/internal/logging"
)

// EngineConfig holds configuration options for the recurrence engine
type EngineConfig struct {
	// Location is the reference timezone every input date is normalized to.
	// Nil means UTC.
	Location *time.Location

	// MaxOccurrences caps the length of a generated schedule (0 = unlimited).
	MaxOccurrences int

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultEngineConfig provides sensible defaults for production use
var DefaultEngineConfig = EngineConfig{
	Location:       time.UTC,
	MaxOccurrences: 1000,
}

// NewEngineWithConfig creates a new recurrence engine with custom configuration
func NewEngineWithConfig(config EngineConfig) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Engine{
		cal:    calendar.New(config.Location),
		config: config,
		logger: logger,
	}
}
