// Package renderer formats engine reports as markdown, ready to be printed
// raw or rendered to the terminal.
package renderer

import (
	"fmt"
	"strings"

	"github.com/paydrift/waterfall"
	"github.com/paydrift/waterfall/starling"
)

// Balances renders the main balance, the pots, and any legacy recurring
// transfers still configured at the bank.
func Balances(main waterfall.Money, pots []waterfall.Pot, recurring []starling.RecurringTransfer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Account on %s\n\n", mainLabel(main))

	b.WriteString("## Pots\n\n")
	if len(pots) == 0 {
		b.WriteString("No pots found.\n")
	} else {
		b.WriteString("| Pot | Balance |\n")
		b.WriteString("| --- | ---: |\n")
		for _, p := range pots {
			fmt.Fprintf(&b, "| %s | %s |\n", p.Name, p.Balance)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Recurring transfers\n\n")
	if len(recurring) == 0 {
		b.WriteString("None. All transfers are waterfall-managed.\n")
		return b.String()
	}
	total := waterfall.M(0, "")
	b.WriteString("| Pot | Next payment | Amount |\n")
	b.WriteString("| --- | --- | ---: |\n")
	for _, rt := range recurring {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", rt.GoalName, rt.NextPaymentDate, rt.Amount)
		total = total.Add(rt.Amount)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** |\n", total)
	return b.String()
}

// mainLabel folds the main balance into the report title.
func mainLabel(main waterfall.Money) string {
	return fmt.Sprintf("main balance %s", main)
}

// Plan renders a transfer plan, zero entries included, so the user sees the
// decision for every pot.
func Plan(p waterfall.TransferPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transfer plan for payday %s\n\n", p.Payday)
	fmt.Fprintf(&b, "Available: %s\n\n", p.Available)
	b.WriteString("| Pot | Transfer |\n")
	b.WriteString("| --- | ---: |\n")
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "| %s | %s |\n", e.Name, e.Amount)
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n\n", p.Total())
	fmt.Fprintf(&b, "Left on main account: %s\n", p.Available.Sub(p.Total()))
	return b.String()
}

// Result renders the outcome of an orchestrator run.
func Result(res waterfall.RunResult, sched *waterfall.Schedule) string {
	var b strings.Builder
	switch res.Outcome {
	case waterfall.NotDue:
		fmt.Fprintf(&b, "Nothing to do: next payment date is %s (%s).\n",
			sched.NextPaymentDate, sched.Status)
	case waterfall.Skipped:
		fmt.Fprintf(&b, "Cycle skipped: no funds available. Next payment date is %s.\n",
			sched.NextPaymentDate)
	case waterfall.Executed:
		b.WriteString(Plan(res.Plan))
		fmt.Fprintf(&b, "\nAll transfers executed. Next payment date is %s.\n",
			sched.NextPaymentDate)
	case waterfall.PartialFailure:
		b.WriteString(Plan(res.Plan))
		b.WriteString("\n## Unfunded pots\n\n")
		for _, u := range res.Unfunded {
			fmt.Fprintf(&b, "- %s (%s): %v\n", u.Name, u.Amount, u.Err)
		}
		b.WriteString("\nThe cycle stays pending; the next run retries only the missing transfers.\n")
	}
	return b.String()
}

// Schedule renders the persisted schedule record.
func Schedule(s *waterfall.Schedule) string {
	var b strings.Builder
	b.WriteString("# Schedule\n\n")
	fmt.Fprintf(&b, "- Next payment date: %s\n", s.NextPaymentDate)
	if s.LastExecuted.IsZero() {
		b.WriteString("- Last executed: never\n")
	} else {
		fmt.Fprintf(&b, "- Last executed: %s\n", s.LastExecuted)
	}
	fmt.Fprintf(&b, "- Status: %s\n", s.Status)
	return b.String()
}
