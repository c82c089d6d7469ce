package waterfall

import (
	"fmt"
	"sort"

	"github.com/paydrift/waterfall/date"
)

// TransferEntry is the allocator's decision for one pot. Every pot of the
// plan gets an entry, zero amounts included, so a consumer always sees the
// full picture.
type TransferEntry struct {
	PotID  string
	Name   string
	Amount Money
}

// TransferPlan is the outcome of one allocation pass. It is built, acted
// upon and discarded within a single run.
type TransferPlan struct {
	Payday    date.Date
	Available Money
	Entries   []TransferEntry
}

// Total returns the sum of all allocated amounts.
func (p TransferPlan) Total() Money {
	total := M(0, p.Available.Currency())
	for _, e := range p.Entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Allocate distributes the available amount across the pots in ascending
// priority order: each pot receives min(need, remaining) where need is
// target minus balance clamped at zero. A single greedy pass, no
// backtracking: routing must stay predictable and inspectable.
func Allocate(available Money, pots []Pot) (TransferPlan, error) {
	if available.IsNegative() {
		return TransferPlan{}, &ConfigError{Reason: "available amount is negative"}
	}
	seen := make(map[int]string, len(pots))
	for _, p := range pots {
		if p.Target.IsNegative() {
			return TransferPlan{}, &ConfigError{Reason: fmt.Sprintf("pot %q has a negative target", p.Name)}
		}
		if p.Balance.IsNegative() {
			return TransferPlan{}, &ConfigError{Reason: fmt.Sprintf("pot %q has a negative balance", p.Name)}
		}
		if other, ok := seen[p.Priority]; ok {
			return TransferPlan{}, &ConfigError{Reason: fmt.Sprintf("pots %q and %q share priority %d", other, p.Name, p.Priority)}
		}
		seen[p.Priority] = p.Name
	}

	ordered := make([]Pot, len(pots))
	copy(ordered, pots)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })

	plan := TransferPlan{
		Available: available,
		Entries:   make([]TransferEntry, 0, len(ordered)),
	}
	remaining := available
	for _, p := range ordered {
		amount := Min(p.Need(), remaining)
		remaining = remaining.Sub(amount)
		plan.Entries = append(plan.Entries, TransferEntry{PotID: p.ID, Name: p.Name, Amount: amount})
	}
	return plan, nil
}
