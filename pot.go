package waterfall

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Pot is a savings sub-account with a target and a priority rank.
// Balance comes live from the gateway; Target and Priority come from the plan.
type Pot struct {
	ID       string
	Name     string
	Balance  Money
	Target   Money
	Priority int
}

// Need returns how much the pot is missing to reach its target, clamped at zero.
func (p Pot) Need() Money {
	need := p.Target.Sub(p.Balance)
	if need.IsNegative() {
		return M(0, need.Currency())
	}
	return need
}

// PlanPot is one pot entry in the allocation plan file.
// Target is expressed in major units ("500" or "512.50") for readability.
type PlanPot struct {
	Name     string          `json:"name"`
	Priority int             `json:"priority"`
	Target   decimal.Decimal `json:"target"`
}

// Plan is the user's allocation plan: which pots to fill, in which order, up
// to which target. Pots are matched to the gateway's savings goals by name.
type Plan struct {
	Currency    string    `json:"currency,omitempty"`
	SkipOnEmpty bool      `json:"skipOnEmpty,omitempty"`
	Pots        []PlanPot `json:"pots"`
}

// currency returns the plan currency, defaulting to GBP.
func (p *Plan) currency() string {
	if p.Currency == "" {
		return "GBP"
	}
	return p.Currency
}

// Validate rejects plans that would make allocation ambiguous or nonsensical.
// Priorities must form a strict total order; targets must not be negative.
// It runs before any external call is made.
func (p *Plan) Validate() error {
	if len(p.Pots) == 0 {
		return &ConfigError{Reason: "no pots declared"}
	}
	seenPriority := make(map[int]string, len(p.Pots))
	seenName := make(map[string]bool, len(p.Pots))
	for _, pot := range p.Pots {
		if pot.Name == "" {
			return &ConfigError{Reason: "pot with empty name"}
		}
		if seenName[pot.Name] {
			return &ConfigError{Reason: fmt.Sprintf("pot %q declared twice", pot.Name)}
		}
		seenName[pot.Name] = true
		if other, ok := seenPriority[pot.Priority]; ok {
			return &ConfigError{Reason: fmt.Sprintf("pots %q and %q share priority %d", other, pot.Name, pot.Priority)}
		}
		seenPriority[pot.Priority] = pot.Name
		if pot.Target.IsNegative() {
			return &ConfigError{Reason: fmt.Sprintf("pot %q has a negative target", pot.Name)}
		}
	}
	return nil
}

// Resolve matches the plan's pots against the live pots reported by the
// gateway, and returns them with the plan's priority and target applied,
// sorted by ascending priority. A plan pot with no matching live pot is a
// ConfigError: silently dropping it would starve every pot behind it.
// Live pots absent from the plan are ignored.
func (p *Plan) Resolve(live []Pot) ([]Pot, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	byName := make(map[string]Pot, len(live))
	for _, pot := range live {
		byName[pot.Name] = pot
	}

	pots := make([]Pot, 0, len(p.Pots))
	for _, pp := range p.Pots {
		pot, ok := byName[pp.Name]
		if !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("pot %q not found at the bank", pp.Name)}
		}
		target, err := ParseAmount(pp.Target.String(), p.currency())
		if err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("pot %q: %v", pp.Name, err)}
		}
		pot.Target = target
		pot.Priority = pp.Priority
		pots = append(pots, pot)
	}
	sort.Slice(pots, func(i, j int) bool { return pots[i].Priority < pots[j].Priority })
	return pots, nil
}
