package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/paydrift/waterfall"
	"github.com/paydrift/waterfall/date"
	"github.com/paydrift/waterfall/renderer"
)

type previewCmd struct {
	date string
}

func (*previewCmd) Name() string { return "preview" }
func (*previewCmd) Synopsis() string {
	return "compute and display the next transfer plan without executing it"
}
func (*previewCmd) Usage() string {
	return `wfl preview [-d <date>]

  Fetches live balances, runs the waterfall allocation for the current cycle
  and prints the resulting transfer plan. Nothing is executed and the
  schedule is not touched.

Usage Examples:
# Preview today's plan.
$ wfl preview

`
}

func (p *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Evaluation date (defaults to today)")
}

func (p *previewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now := date.Today()
	if p.date != "" {
		var err error
		if now, err = date.Parse(p.date); err != nil {
			return fail(err)
		}
	}

	sched, err := waterfall.LoadSchedule(*scheduleFile)
	if err != nil {
		return fail(fmt.Errorf("cannot load schedule (run 'wfl init' first?): %w", err))
	}
	runner, err := loadRunner()
	if err != nil {
		return fail(err)
	}

	plan, err := runner.Preview(sched.NextPaymentDate)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Plan(plan))

	if sched.Status != waterfall.StatusPending {
		fmt.Printf("Cycle already %s; 'wfl run' would do nothing.\n", sched.Status)
	} else if !waterfall.IsDue(now, sched.NextPaymentDate) {
		fmt.Printf("Not due until %s; 'wfl run' would do nothing today.\n", sched.NextPaymentDate)
	}
	return subcommands.ExitSuccess
}
