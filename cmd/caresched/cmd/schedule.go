package cmd

import (
	"github.com/spf13/cobra"
)

func (a *app) nextCmd() *cobra.Command {
	var rf ruleFlags

	cmd := &cobra.Command{
		Use:   "next <last-date>",
		Short: "Print the next occurrence of a rule after a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := rf.rule()
			if err != nil {
				return err
			}
			dates, err := a.parseDates(args)
			if err != nil {
				return err
			}

			next := a.engine().NextOccurrence(dates[0], rule)
			a.logger.Debug("next occurrence", "rule", rule.String(), "last", args[0])

			text := next.Format(dateLayout)
			return a.print(cmd.OutOrStdout(), map[string]string{"next": text}, text)
		},
	}
	rf.register(cmd)
	return cmd
}

func (a *app) scheduleCmd() *cobra.Command {
	var (
		rf    ruleFlags
		count int
	)

	cmd := &cobra.Command{
		Use:   "schedule <start-date>",
		Short: "List upcoming occurrences of a rule, starting with the start date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := rf.rule()
			if err != nil {
				return err
			}
			dates, err := a.parseDates(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = a.cfg.Schedule.DefaultCount
			}

			out := formatDates(a.engine().FutureOccurrenceList(dates[0], rule, count))
			return a.print(cmd.OutOrStdout(), map[string]any{"rule": rule, "dates": out}, out...)
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of occurrences (default from config)")
	return cmd
}

func (a *app) advanceCmd() *cobra.Command {
	var (
		of    offsetFlags
		count int
	)

	cmd := &cobra.Command{
		Use:   "advance <last-date>",
		Short: "Advance a date by a fixed offset",
		Long: `Advance a date by a fixed number of days, weeks, months or years.
Month and year offsets roll over like Go's time.AddDate: 2024-01-31 plus one
month is 2024-03-02.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := of.offset()
			if err != nil {
				return err
			}
			dates, err := a.parseDates(args)
			if err != nil {
				return err
			}

			engine := a.engine()
			var out []string
			if count > 0 {
				for d := range engine.OffsetOccurrences(engine.Advance(dates[0], offset), offset, count) {
					out = append(out, d.Format(dateLayout))
				}
			} else {
				out = []string{engine.Advance(dates[0], offset).Format(dateLayout)}
			}
			return a.print(cmd.OutOrStdout(), map[string]any{"offset": offset.String(), "dates": out}, out...)
		},
	}
	of.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 0, "list this many successive advances instead of one")
	_ = cmd.MarkFlagRequired("unit")
	return cmd
}
