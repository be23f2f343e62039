package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cyp0633/caresched/internal/locale"
	"github.com/cyp0633/caresched/recurrence"
)

func (a *app) icsCmd() *cobra.Command {
	var (
		rf      ruleFlags
		of      offsetFlags
		id      string
		name    string
		comment string
		count   int
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "ics <start-date>",
		Short: "Export a schedule as an iCalendar file",
		Long: `Export the upcoming occurrences of a treatment as all-day events.

The schedule follows --rule (and its companion flags), or a fixed offset
when --unit is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := a.parseDates(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = a.cfg.Schedule.DefaultCount
			}
			if id == "" {
				id = uuid.NewString()
			}

			ev := recurrence.ScheduledEvent{
				ID:      id,
				Name:    a.cfg.LocaleValue().Sprintf(locale.MsgOccurrenceName, name),
				Start:   dates[0],
				Count:   count,
				Comment: comment,
			}
			if of.set() {
				offset, err := of.offset()
				if err != nil {
					return err
				}
				ev.Offset = &offset
			} else if ev.Rule, err = rf.rule(); err != nil {
				return err
			}

			cal := a.engine().ExportCalendar([]recurrence.ScheduledEvent{ev}, time.Now())

			if outFile != "" {
				err = writeCalendarFile(outFile, cal)
			} else {
				err = recurrence.WriteCalendar(cmd.OutOrStdout(), cal)
			}
			if err != nil {
				return err
			}
			a.logger.Info("calendar exported",
				"event", id,
				"occurrences", len(cal.Children))
			return nil
		},
	}
	rf.register(cmd)
	of.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "stable identifier of the treatment (default random)")
	cmd.Flags().StringVar(&name, "name", "", "medication or treatment name")
	cmd.Flags().StringVar(&comment, "comment", "", "event description")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of occurrences (default from config)")
	cmd.Flags().StringVarP(&outFile, "file", "f", "", "write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("name")
	excludeRuleWithOffset(cmd)
	return cmd
}

// writeCalendarFile encodes cal into path, including any error from closing
// the file.
func writeCalendarFile(path string, cal *ical.Calendar) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return recurrence.WriteCalendar(f, cal)
}

func (a *app) describeCmd() *cobra.Command {
	var rf ruleFlags

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe a periodicity rule in the configured locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule, err := rf.rule()
			if err != nil {
				return err
			}
			text := recurrence.Describe(rule, a.cfg.LocaleValue())
			return a.print(cmd.OutOrStdout(), map[string]any{
				"rule":        rule,
				"rrule":       rule.RRuleString(),
				"description": text,
			}, text)
		},
	}
	rf.register(cmd)
	return cmd
}
