package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/paydrift/waterfall"
	"github.com/paydrift/waterfall/date"
)

type initCmd struct{}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the schedule for the upcoming payday" }
func (*initCmd) Usage() string {
	return `wfl init

  Creates the schedule file with a pending cycle due on the next payday:
  this month's last working day, or next month's when this month's has
  already passed. Refuses to overwrite an existing schedule; use 'wfl reset'
  for that.
`
}

func (*initCmd) SetFlags(f *flag.FlagSet) {}

func (*initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*scheduleFile); err == nil {
		return fail(fmt.Errorf("schedule %q already exists, use 'wfl reset' to overwrite it", *scheduleFile))
	}

	cal, err := loadCalendar()
	if err != nil {
		return fail(err)
	}
	today := date.Today()
	payday, err := waterfall.LastWorkingDay(today.Year(), today.Month(), cal)
	if err != nil {
		return fail(err)
	}
	if today.After(payday) {
		next := today.NextMonth()
		if payday, err = waterfall.LastWorkingDay(next.Year(), next.Month(), cal); err != nil {
			return fail(err)
		}
	}

	release, err := waterfall.LockSchedule(*scheduleFile)
	if err != nil {
		return fail(err)
	}
	defer release()

	sched := waterfall.NewSchedule(payday)
	if err := waterfall.SaveSchedule(*scheduleFile, sched); err != nil {
		return fail(err)
	}
	fmt.Printf("Schedule created in %q, next payment date is %s.\n", *scheduleFile, payday)
	return subcommands.ExitSuccess
}
