package waterfall

import (
	"errors"
	"reflect"
	"testing"
)

// gbp is a test shorthand for minor-unit GBP amounts.
func gbp(minor int64) Money { return M(minor, "GBP") }

func twoPots() []Pot {
	return []Pot{
		{ID: "a", Name: "A", Balance: gbp(0), Target: gbp(500), Priority: 1},
		{ID: "b", Name: "B", Balance: gbp(0), Target: gbp(300), Priority: 2},
	}
}

func amounts(p TransferPlan) []int64 {
	out := make([]int64, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Amount.MinorUnits())
	}
	return out
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name      string
		available int64
		pots      []Pot
		want      []int64
	}{
		{"enough for the first, part of the second", 700, twoPots(), []int64{500, 200}},
		{"only part of the first", 200, twoPots(), []int64{200, 0}},
		{"exactly all targets", 800, twoPots(), []int64{500, 300}},
		{"surplus stays on the main account", 1000, twoPots(), []int64{500, 300}},
		{"nothing available yields an all-zero plan", 0, twoPots(), []int64{0, 0}},
		{"pot already at target is skipped with a zero entry", 700,
			[]Pot{
				{ID: "a", Name: "A", Balance: gbp(500), Target: gbp(500), Priority: 1},
				{ID: "b", Name: "B", Balance: gbp(0), Target: gbp(300), Priority: 2},
			},
			[]int64{0, 300}},
		{"pot above target never receives", 700,
			[]Pot{
				{ID: "a", Name: "A", Balance: gbp(900), Target: gbp(500), Priority: 1},
				{ID: "b", Name: "B", Balance: gbp(0), Target: gbp(300), Priority: 2},
			},
			[]int64{0, 300}},
		{"input order does not matter, priority does", 700,
			[]Pot{
				{ID: "b", Name: "B", Balance: gbp(0), Target: gbp(300), Priority: 2},
				{ID: "a", Name: "A", Balance: gbp(0), Target: gbp(500), Priority: 1},
			},
			[]int64{500, 200}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Allocate(gbp(tc.available), tc.pots)
			if err != nil {
				t.Fatalf("Allocate: %v", err)
			}
			if got := amounts(plan); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Allocate(%d) = %v, want %v", tc.available, got, tc.want)
			}
			if len(plan.Entries) != len(tc.pots) {
				t.Errorf("plan has %d entries, want one per pot (%d)", len(plan.Entries), len(tc.pots))
			}
			if plan.Total().MinorUnits() > tc.available {
				t.Errorf("allocated %d, more than the %d available", plan.Total().MinorUnits(), tc.available)
			}
		})
	}
}

// TestAllocateConservation checks that for any available amount the sum of
// allocations equals min(available, total need).
func TestAllocateConservation(t *testing.T) {
	pots := twoPots()
	const totalNeed = 800
	for available := int64(0); available <= 1000; available += 50 {
		plan, err := Allocate(gbp(available), pots)
		if err != nil {
			t.Fatal(err)
		}
		want := available
		if want > totalNeed {
			want = totalNeed
		}
		if got := plan.Total().MinorUnits(); got != want {
			t.Errorf("available %d: allocated %d, want %d", available, got, want)
		}
	}
}

func TestAllocateDeterministic(t *testing.T) {
	first, err := Allocate(gbp(700), twoPots())
	if err != nil {
		t.Fatal(err)
	}
	again, err := Allocate(gbp(700), twoPots())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Errorf("same inputs gave different plans: %v then %v", first, again)
	}
}

func TestAllocateNeverAboveTarget(t *testing.T) {
	plan, err := Allocate(gbp(10_000), twoPots())
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range twoPots() {
		if got := plan.Entries[i].Amount.MinorUnits(); got > p.Need().MinorUnits() {
			t.Errorf("pot %s received %d, more than its need %d", p.Name, got, p.Need().MinorUnits())
		}
	}
}

func TestAllocateRejects(t *testing.T) {
	tests := []struct {
		name      string
		available int64
		pots      []Pot
	}{
		{"negative available", -1, twoPots()},
		{"negative target", 700, []Pot{{ID: "a", Name: "A", Target: gbp(-1), Priority: 1}}},
		{"negative balance", 700, []Pot{{ID: "a", Name: "A", Balance: gbp(-1), Target: gbp(10), Priority: 1}}},
		{"duplicate priority", 700, []Pot{
			{ID: "a", Name: "A", Target: gbp(10), Priority: 1},
			{ID: "b", Name: "B", Target: gbp(10), Priority: 1},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Allocate(gbp(tc.available), tc.pots)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected a ConfigError, got %v", err)
			}
		})
	}
}
