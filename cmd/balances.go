package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/paydrift/waterfall/renderer"
)

type balancesCmd struct{}

func (*balancesCmd) Name() string { return "balances" }
func (*balancesCmd) Synopsis() string {
	return "display the main balance, the pots, and any legacy recurring transfers"
}
func (*balancesCmd) Usage() string {
	return `wfl balances

  Fetches the main account balance and all active pots from the bank and
  displays them, together with any fixed-day recurring transfers that are
  still configured on the pots (the transfers the waterfall replaces).
`
}

func (*balancesCmd) SetFlags(f *flag.FlagSet) {}

func (*balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	gw, err := openGateway()
	if err != nil {
		return fail(err)
	}
	main, err := gw.Balance()
	if err != nil {
		return fail(err)
	}
	pots, err := gw.Pots()
	if err != nil {
		return fail(err)
	}
	recurring, err := gw.RecurringTransfers()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Balances(main, pots, recurring))
	return subcommands.ExitSuccess
}
