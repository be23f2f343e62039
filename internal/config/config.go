package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/cyp0633/caresched/internal/locale"
	"github.com/cyp0633/caresched/internal/logging"
	"github.com/cyp0633/caresched/recurrence"
	"github.com/cyp0633/caresched/stay"
)

// RelativePath is the config file location below the XDG config dirs.
const RelativePath = "caresched/config.yaml"

// Config represents the application configuration
type Config struct {
	Timezone string         `yaml:"timezone"`
	Locale   string         `yaml:"locale"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Stay     StayConfig     `yaml:"stay"`
	Logging  LoggingConfig  `yaml:"logging"`

	location *time.Location
	loc      locale.Locale
}

// ScheduleConfig represents occurrence generation limits
type ScheduleConfig struct {
	DefaultCount   int `yaml:"default_count"`
	MaxOccurrences int `yaml:"max_occurrences"`
}

// StayConfig represents stay validation limits
type StayConfig struct {
	MaxSpanDays int `yaml:"max_span_days"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate fills defaults and checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.location = location

	if c.Locale == "" {
		c.Locale = locale.PortugueseBrazil.String()
	}
	loc, err := locale.Lookup(c.Locale)
	if err != nil {
		return err
	}
	c.loc = loc

	if c.Schedule.DefaultCount == 0 {
		c.Schedule.DefaultCount = 5
	}
	if c.Schedule.DefaultCount < 0 {
		return fmt.Errorf("schedule.default_count must be positive, got %d", c.Schedule.DefaultCount)
	}
	if c.Schedule.MaxOccurrences == 0 {
		c.Schedule.MaxOccurrences = recurrence.DefaultEngineConfig.MaxOccurrences
	}
	if c.Schedule.MaxOccurrences < 0 {
		return fmt.Errorf("schedule.max_occurrences must be positive, got %d", c.Schedule.MaxOccurrences)
	}

	if c.Stay.MaxSpanDays == 0 {
		c.Stay.MaxSpanDays = stay.DefaultMaxSpanDays
	}
	if c.Stay.MaxSpanDays < 0 {
		return fmt.Errorf("stay.max_span_days must be positive, got %d", c.Stay.MaxSpanDays)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if _, err := logging.New(io.Discard, c.LoggingOptions()); err != nil {
		return err
	}

	return nil
}

// Location returns the validated reference timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// LocaleValue returns the validated presentation locale.
func (c *Config) LocaleValue() locale.Locale {
	if c.loc.IsZero() {
		return locale.PortugueseBrazil
	}
	return c.loc
}

// EngineConfig derives the recurrence engine settings.
func (c *Config) EngineConfig(logger *slog.Logger) recurrence.EngineConfig {
	return recurrence.EngineConfig{
		Location:       c.Location(),
		MaxOccurrences: c.Schedule.MaxOccurrences,
		Logger:         logger,
	}
}

// LoggingOptions derives the logger settings.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
	}
}

// StayConfig derives the stay calculator settings.
func (c *Config) StayConfig(logger *slog.Logger) stay.Config {
	return stay.Config{
		Location:    c.Location(),
		Locale:      c.LocaleValue(),
		MaxSpanDays: c.Stay.MaxSpanDays,
		Logger:      logger,
	}
}

// Load loads configuration from XDG-compliant locations. When no file
// exists the defaults are returned.
func Load() (*Config, error) {
	configPath, err := xdg.SearchConfigFile(RelativePath)
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFromFile(configPath)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found at %s", path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	if err := config.Validate(); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return config
}

// WriteDefaultConfig writes a default configuration to the XDG config directory
func WriteDefaultConfig() (string, error) {
	configPath, err := xdg.ConfigFile(RelativePath)
	if err != nil {
		return "", fmt.Errorf("failed to determine config file path: %w", err)
	}
	return configPath, WriteFile(configPath, DefaultConfig())
}

// WriteFile writes config as YAML, creating parent directories.
func WriteFile(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
