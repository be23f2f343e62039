package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cyp0633/caresched/stay"
)

// ErrInvalidStay is returned by "stay validate" for a rejected period, after
// the localized reason has been printed.
var ErrInvalidStay = errors.New("invalid stay")

func (a *app) stayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stay",
		Short: "Stay period calculations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "count <check-in> <check-out>",
			Short: "Number of billable days, both endpoints included",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dates, err := a.parseDates(args)
				if err != nil {
					return err
				}
				n := a.calculator().DayCount(dates[0], dates[1])
				return a.print(cmd.OutOrStdout(), map[string]int{"days": n}, strconv.Itoa(n))
			},
		},
		&cobra.Command{
			Use:   "dates <check-in> <check-out>",
			Short: "List every date covered by the stay",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dates, err := a.parseDates(args)
				if err != nil {
					return err
				}
				out := formatDates(a.calculator().CoveredDateList(dates[0], dates[1]))
				return a.print(cmd.OutOrStdout(), map[string][]string{"dates": out}, out...)
			},
		},
		&cobra.Command{
			Use:   "contains <date> <check-in> <check-out>",
			Short: "Report whether a date falls within the stay",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				dates, err := a.parseDates(args)
				if err != nil {
					return err
				}
				ok := a.calculator().Contains(dates[0], dates[1], dates[2])
				return a.print(cmd.OutOrStdout(), map[string]bool{"contains": ok}, strconv.FormatBool(ok))
			},
		},
		&cobra.Command{
			Use:   "validate <check-in> <check-out>",
			Short: "Check ordering and maximum span",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dates, err := a.parseDates(args)
				if err != nil {
					return err
				}

				result := a.calculator().Validate(dates[0], dates[1])
				if result.IsOk() {
					return a.print(cmd.OutOrStdout(), map[string]bool{"valid": true}, "ok")
				}

				var verr *stay.ValidationError
				if !errors.As(result.Error(), &verr) {
					return result.Error()
				}
				if err := a.print(cmd.OutOrStdout(),
					map[string]any{"valid": false, "reason": verr.Err.Error(), "message": verr.Message},
					verr.Message); err != nil {
					return err
				}
				return fmt.Errorf("%w: %w", ErrInvalidStay, verr)
			},
		},
		&cobra.Command{
			Use:   "format <check-in> <check-out>",
			Short: "Render a localized stay label",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dates, err := a.parseDates(args)
				if err != nil {
					return err
				}
				calc := a.calculator()
				label := calc.Format(dates[0], dates[1], calc.DayCount(dates[0], dates[1]))
				return a.print(cmd.OutOrStdout(), map[string]string{"label": label}, label)
			},
		},
		&cobra.Command{
			Use:   "summary <check-in> <check-out>",
			Short: "Validate and summarize a stay in one step",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dates, err := a.parseDates(args)
				if err != nil {
					return err
				}
				summary, err := a.calculator().Summarize(dates[0], dates[1]).Get()
				if err != nil {
					return err
				}
				out := formatDates(summary.Dates)
				return a.print(cmd.OutOrStdout(), map[string]any{
					"checkIn":  summary.CheckIn.Format(dateLayout),
					"checkOut": summary.CheckOut.Format(dateLayout),
					"days":     summary.Days,
					"dates":    out,
					"label":    summary.Label,
				}, summary.Label)
			},
		},
	)
	return cmd
}
