package waterfall

import (
	"github.com/paydrift/waterfall/date"
)

// Gateway is the banking provider as the engine sees it: three synchronous
// calls, each bounded by the implementation's own timeout. Once Transfer has
// been sent, "sent" means "maybe executed"; the engine never tries to cancel,
// it relies on recomputing need from fresh balances instead.
type Gateway interface {
	// Balance returns the main account's available balance.
	Balance() (Money, error)
	// Pots returns the savings pots with their current balances.
	Pots() ([]Pot, error)
	// Transfer moves the given amount from the main account into a pot.
	Transfer(potID string, amount Money) error
}

// Outcome classifies the result of one orchestrator run.
type Outcome string

const (
	// NotDue: nothing to do, the current cycle is not due or already terminal.
	NotDue Outcome = "not-due"
	// Executed: all transfers issued, schedule advanced to the next cycle.
	Executed Outcome = "executed"
	// Skipped: available funds were zero and the plan says skip-on-empty.
	Skipped Outcome = "skipped"
	// PartialFailure: some transfers failed, schedule left pending for retry.
	PartialFailure Outcome = "partial-failure"
)

// Unfunded describes a pot that should have received funds but did not.
type Unfunded struct {
	PotID  string
	Name   string
	Amount Money
	Err    error
}

// RunResult is what one orchestrator invocation reports back.
type RunResult struct {
	Outcome  Outcome
	Plan     TransferPlan // empty for NotDue
	Unfunded []Unfunded   // populated for PartialFailure
}

// Runner composes the engine: calendar, allocation plan and banking gateway.
// The schedule is passed explicitly into Run and mutated in place; persisting
// it (and locking around it) is the caller's business.
type Runner struct {
	Gateway  Gateway
	Plan     *Plan
	Calendar HolidayCalendar
}

// Preview fetches live balances and returns the transfer plan that Run would
// execute for the given payday, without issuing any transfer.
func (r *Runner) Preview(payday date.Date) (TransferPlan, error) {
	available, pots, err := r.fetch()
	if err != nil {
		return TransferPlan{}, err
	}
	plan, err := Allocate(available, pots)
	if err != nil {
		return TransferPlan{}, err
	}
	plan.Payday = payday
	return plan, nil
}

// Run processes the current pay cycle. The sequence is: due check, balance
// and pot read, allocation, transfers, then schedule transition and advance.
// Failure handling follows one rule: the schedule only moves to a terminal
// state once the cycle's outcome is beyond doubt.
//
//   - Plan and calendar problems abort before any external call.
//   - A failed read aborts with the schedule untouched.
//   - Failed transfers leave the schedule Pending and are reported in the
//     result as PartialFailure; the error is nil because the run itself
//     completed. The next invocation recomputes need from fresh balances,
//     so pots already funded drop out and only the missing ones retry.
func (r *Runner) Run(sched *Schedule, now date.Date) (RunResult, error) {
	if err := r.Plan.Validate(); err != nil {
		return RunResult{}, err
	}
	if sched.Status != StatusPending || !IsDue(now, sched.NextPaymentDate) {
		return RunResult{Outcome: NotDue}, nil
	}

	available, pots, err := r.fetch()
	if err != nil {
		return RunResult{}, err
	}

	if available.IsZero() && r.Plan.SkipOnEmpty {
		if err := sched.MarkSkipped(); err != nil {
			return RunResult{}, err
		}
		if err := sched.Advance(r.Calendar); err != nil {
			return RunResult{}, err
		}
		return RunResult{Outcome: Skipped}, nil
	}

	plan, err := Allocate(available, pots)
	if err != nil {
		return RunResult{}, err
	}
	plan.Payday = sched.NextPaymentDate

	var unfunded []Unfunded
	for _, entry := range plan.Entries {
		if entry.Amount.IsZero() {
			continue
		}
		if err := r.Gateway.Transfer(entry.PotID, entry.Amount); err != nil {
			unfunded = append(unfunded, Unfunded{
				PotID:  entry.PotID,
				Name:   entry.Name,
				Amount: entry.Amount,
				Err:    &GatewayError{Op: "transfer to " + entry.Name, Err: err},
			})
		}
	}
	if len(unfunded) > 0 {
		// Leave the schedule Pending on purpose: the next invocation retries.
		return RunResult{Outcome: PartialFailure, Plan: plan, Unfunded: unfunded}, nil
	}

	if err := sched.MarkExecuted(now); err != nil {
		return RunResult{}, err
	}
	if err := sched.Advance(r.Calendar); err != nil {
		return RunResult{}, err
	}
	return RunResult{Outcome: Executed, Plan: plan}, nil
}

// fetch reads the main balance and the plan's pots from the gateway.
func (r *Runner) fetch() (Money, []Pot, error) {
	available, err := r.Gateway.Balance()
	if err != nil {
		return Money{}, nil, &GatewayError{Op: "balance", Err: err}
	}
	if available.IsNegative() {
		// An overdrawn account has nothing to distribute.
		available = M(0, available.Currency())
	}
	live, err := r.Gateway.Pots()
	if err != nil {
		return Money{}, nil, &GatewayError{Op: "pots", Err: err}
	}
	pots, err := r.Plan.Resolve(live)
	if err != nil {
		return Money{}, nil, err
	}
	return available, pots, nil
}
