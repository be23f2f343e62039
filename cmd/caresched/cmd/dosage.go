package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cyp0633/caresched/dosage"
)

func (a *app) dosageCmd() *cobra.Command {
	var (
		base     string
		mode     string
		rate     string
		interval int
		target   string
		current  int
		preview  int
	)

	cmd := &cobra.Command{
		Use:   "dosage",
		Short: "Compute a progressive or regressive dosage",
		Long: `Compute the dosage after a number of doses, adjusting the base dosage by
a rate every --interval doses.

Examples:
  caresched dosage --base 10mg --mode increase --rate 10% --interval 2 --current 4
  caresched dosage --base 20mg --mode decrease --rate 5mg --target 5mg --preview 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := dosage.Parse(base)
			if err != nil {
				return err
			}
			p, err := buildProgression(mode, rate, interval, target)
			if err != nil {
				return err
			}

			if preview > 0 {
				steps, err := p.Preview(b, current, preview)
				if err != nil {
					return err
				}
				lines := make([]string, len(steps))
				rows := make([]map[string]any, len(steps))
				for i, s := range steps {
					lines[i] = fmt.Sprintf("%d\t%s", s.DoseNumber, s.Dosage)
					rows[i] = map[string]any{"dose": s.DoseNumber, "dosage": s.Dosage.String()}
				}
				return a.print(cmd.OutOrStdout(), rows, lines...)
			}

			d, err := p.At(b, current)
			if err != nil {
				return err
			}
			reached, err := p.ReachedTarget(b, current)
			if err != nil {
				return err
			}
			a.logger.Debug("dosage computed",
				"base", b.String(),
				"doses", current,
				"dosage", d.String())

			return a.print(cmd.OutOrStdout(),
				map[string]any{"dosage": d.String(), "reachedTarget": reached},
				d.String(), "target reached: "+strconv.FormatBool(reached))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&base, "base", "", "base dosage, e.g. 10mg")
	flags.StringVar(&mode, "mode", "stable", "progression mode (stable, increase, decrease)")
	flags.StringVar(&rate, "rate", "", "adjustment per interval, e.g. 10% or 5mg")
	flags.IntVar(&interval, "interval", 1, "adjust every this many doses")
	flags.StringVar(&target, "target", "", "optional target dosage")
	flags.IntVar(&current, "current", 0, "doses already given")
	flags.IntVar(&preview, "preview", 0, "list the next N doses instead of the current dosage")
	_ = cmd.MarkFlagRequired("base")
	return cmd
}

func buildProgression(mode, rate string, interval int, target string) (dosage.Progression, error) {
	m, err := dosage.ParseMode(mode)
	if err != nil {
		return dosage.Progression{}, err
	}
	p := dosage.Progression{Mode: m, Interval: interval}
	if m == dosage.Stable {
		return p, nil
	}

	if p.Rate, err = dosage.ParseRate(rate); err != nil {
		return dosage.Progression{}, err
	}
	if target != "" {
		t, err := dosage.Parse(target)
		if err != nil {
			return dosage.Progression{}, err
		}
		p.Target = &t
	}
	return p, p.Validate()
}
