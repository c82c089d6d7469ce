package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/paydrift/waterfall"
	"github.com/paydrift/waterfall/date"
)

type resetCmd struct {
	next string
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "overwrite the schedule with a pending cycle" }
func (*resetCmd) Usage() string {
	return `wfl reset -next <date>

  Recovery command: replaces the schedule with a pending cycle due on the
  given date, keeping the last executed date. Use it when the schedule got
  out of step with reality (e.g. transfers were made by hand).

Usage Examples:
# The next cycle should run on the 30th of September.
$ wfl reset -next 2025-09-30

`
}

func (p *resetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.next, "next", "", "The next payment date (required)")
}

func (p *resetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.next == "" {
		return fail(fmt.Errorf("missing -next date"))
	}
	next, err := date.Parse(p.next)
	if err != nil {
		return fail(err)
	}

	release, err := waterfall.LockSchedule(*scheduleFile)
	if err != nil {
		return fail(err)
	}
	defer release()

	sched := waterfall.NewSchedule(next)
	if prev, err := waterfall.LoadSchedule(*scheduleFile); err == nil {
		sched.LastExecuted = prev.LastExecuted
	}
	if err := waterfall.SaveSchedule(*scheduleFile, sched); err != nil {
		return fail(err)
	}
	fmt.Printf("Schedule reset, next payment date is %s.\n", sched.NextPaymentDate)
	return subcommands.ExitSuccess
}
