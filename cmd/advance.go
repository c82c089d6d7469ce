package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/paydrift/waterfall"
)

type advanceCmd struct{}

func (*advanceCmd) Name() string { return "advance" }
func (*advanceCmd) Synopsis() string {
	return "manually advance a finished cycle to the next month's payday"
}
func (*advanceCmd) Usage() string {
	return `wfl advance

  Moves the schedule to the next cycle: resolves the following month's last
  working day and resets the status to pending. Refuses to advance while the
  current cycle is still pending, so a cycle can never be silently dropped.
`
}

func (*advanceCmd) SetFlags(f *flag.FlagSet) {}

func (*advanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	release, err := waterfall.LockSchedule(*scheduleFile)
	if err != nil {
		return fail(err)
	}
	defer release()

	sched, err := waterfall.LoadSchedule(*scheduleFile)
	if err != nil {
		return fail(fmt.Errorf("cannot load schedule (run 'wfl init' first?): %w", err))
	}
	cal, err := loadCalendar()
	if err != nil {
		return fail(err)
	}
	if err := sched.Advance(cal); err != nil {
		return fail(err)
	}
	if err := waterfall.SaveSchedule(*scheduleFile, sched); err != nil {
		return fail(err)
	}
	fmt.Printf("Schedule advanced, next payment date is %s.\n", sched.NextPaymentDate)
	return subcommands.ExitSuccess
}
