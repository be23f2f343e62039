// Package cmd provides the CLI commands for caresched.
package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cyp0633/caresched/internal/config"
	"github.com/cyp0633/caresched/internal/logging"
	"github.com/cyp0633/caresched/recurrence"
	"github.com/cyp0633/caresched/stay"
)

// Version is overridden at build time.
var Version = "0.1.0"

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded configuration.
type app struct {
	cfgFile  string
	verbose  bool
	timezone string
	locale   string
	output   string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "caresched",
		Short: "Compute care schedules and stay periods",
		Long: `caresched computes medication and treatment schedules and boarding
stay periods for a pet daycare.

Examples:
  caresched next --rule weekly --week-days 1,3 2024-01-19
  caresched schedule --rule custom --interval 7 --count 5 2024-01-01
  caresched advance --unit months --amount 3 2024-01-31
  caresched stay count 2024-01-15 2024-01-17
  caresched ics --name Apoquel --rule daily --count 10 2024-02-01`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.init,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/"+config.RelativePath+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.timezone, "timezone", "", "reference timezone, overrides the config file")
	flags.StringVar(&a.locale, "locale", "", "presentation locale (pt-BR, en-US), overrides the config file")
	flags.StringVarP(&a.output, "output", "o", "text", "output format (text, json)")

	root.AddCommand(
		a.nextCmd(),
		a.scheduleCmd(),
		a.advanceCmd(),
		a.stayCmd(),
		a.icsCmd(),
		a.describeCmd(),
		a.dosageCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root, a
}

// Execute runs the CLI and logs any failure before returning it.
func Execute() error {
	return execute(newRoot())
}

func execute(root *cobra.Command, a *app) error {
	err := root.Execute()
	if err != nil {
		a.log(root.ErrOrStderr()).Error("command failed", "error", err)
	}
	return err
}

// log returns the configured logger, or a text logger on w when the
// failure happened before configuration was loaded.
func (a *app) log(w io.Writer) *slog.Logger {
	if a.logger != nil {
		return a.logger
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadFromFile(a.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	if a.timezone != "" || a.locale != "" {
		if a.timezone != "" {
			cfg.Timezone = a.timezone
		}
		if a.locale != "" {
			cfg.Locale = a.locale
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if a.output != "text" && a.output != "json" {
		return fmt.Errorf("invalid output format: %s", a.output)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LoggingOptions())
	if err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	logger.Debug("configuration loaded",
		"timezone", cfg.Timezone,
		"locale", cfg.Locale)
	return nil
}

func (a *app) engine() *recurrence.Engine {
	return recurrence.NewEngineWithConfig(a.cfg.EngineConfig(a.logger))
}

func (a *app) calculator() *stay.Calculator {
	return stay.NewCalculatorWithConfig(a.cfg.StayConfig(a.logger))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "caresched version %s\n", Version)
		},
	}
}
