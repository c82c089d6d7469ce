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

type runCmd struct {
	date  string
	force bool
}

func (*runCmd) Name() string { return "run" }
func (*runCmd) Synopsis() string {
	return "process the current pay cycle: allocate and execute the transfers"
}
func (*runCmd) Usage() string {
	return `wfl run [-d <date>] [-force]

  Processes the current pay cycle. When the cycle is pending and its payday
  has been reached, the available balance is allocated across the pots and
  transfers are issued; when not, the command is a no-op. Safe to call from
  cron every day: each cycle is processed exactly once.

  -force runs a pending cycle even before its payday. A cycle that is
  already executed or skipped is never re-run; use 'wfl advance' first.

Usage Examples:
# Daily cron invocation.
$ wfl run

`
}

func (p *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Evaluation date (defaults to today)")
	f.BoolVar(&p.force, "force", false, "Run a pending cycle even before its payday")
}

func (p *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now := date.Today()
	if p.date != "" {
		var err error
		if now, err = date.Parse(p.date); err != nil {
			return fail(err)
		}
	}

	release, err := waterfall.LockSchedule(*scheduleFile)
	if err != nil {
		return fail(err)
	}
	defer release()

	sched, err := waterfall.LoadSchedule(*scheduleFile)
	if err != nil {
		return fail(fmt.Errorf("cannot load schedule (run 'wfl init' first?): %w", err))
	}
	runner, err := loadRunner()
	if err != nil {
		return fail(err)
	}

	// Forcing means treating the payday as reached; the due check in the
	// engine then passes on its own.
	if p.force && now.Before(sched.NextPaymentDate) {
		now = sched.NextPaymentDate
	}

	res, err := runner.Run(sched, now)
	if err != nil {
		return fail(err)
	}

	// The schedule only changed on a terminal outcome, but an unconditional
	// atomic save keeps this code free of state bookkeeping.
	if err := waterfall.SaveSchedule(*scheduleFile, sched); err != nil {
		return fail(fmt.Errorf("transfers done but schedule not saved: %w", err))
	}

	printMarkdown(renderer.Result(res, sched))
	if res.Outcome == waterfall.PartialFailure {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
