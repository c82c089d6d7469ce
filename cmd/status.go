package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/paydrift/waterfall"
	"github.com/paydrift/waterfall/renderer"
)

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "display the persisted schedule" }
func (*statusCmd) Usage() string {
	return `wfl status

  Prints the persisted schedule: next payment date, last executed date, and
  the current cycle's status.
`
}

func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (*statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sched, err := waterfall.LoadSchedule(*scheduleFile)
	if err != nil {
		return fail(fmt.Errorf("cannot load schedule (run 'wfl init' first?): %w", err))
	}
	printMarkdown(renderer.Schedule(sched))
	return subcommands.ExitSuccess
}
