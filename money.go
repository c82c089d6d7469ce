package waterfall

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in minor currency units (pence, cents).
// The banking API speaks minor units exclusively, so the engine does too;
// go-money is only consulted for currency metadata and display formatting.
type Money struct {
	minor int64
	cur   string
}

// M returns a Money of the given amount of minor units.
func M(minor int64, currency string) Money {
	return Money{minor: minor, cur: currency}
}

// ParseAmount parses a major-unit amount like "500" or "12.50" into Money.
// Going through decimal keeps the conversion exact for any fraction the
// currency supports.
func ParseAmount(str, currency string) (Money, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", str, err)
	}
	fraction := int32(money.New(0, currency).Currency().Fraction)
	shifted := d.Shift(fraction)
	if !shifted.IsInteger() {
		return Money{}, fmt.Errorf("amount %q has more digits than %s allows", str, currency)
	}
	return Money{minor: shifted.IntPart(), cur: currency}, nil
}

// MinorUnits returns the raw minor-unit amount.
func (m Money) MinorUnits() int64 { return m.minor }

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

func (m Money) IsZero() bool     { return m.minor == 0 }
func (m Money) IsNegative() bool { return m.minor < 0 }
func (m Money) IsPositive() bool { return m.minor > 0 }

func (m Money) Equal(n Money) bool    { return m.minor == n.minor && m.cur == n.cur }
func (m Money) LessThan(n Money) bool { return m.minor < n.minor }

// binary operators.
func (m Money) Add(n Money) Money { return Money{minor: m.minor + n.minor, cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{minor: m.minor - n.minor, cur: cur(m, n)} }

// Min returns the smaller of m and n.
func Min(m, n Money) Money {
	if m.minor < n.minor {
		return m
	}
	return n
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// String returns the formatted amount, e.g. "£512.40" for M(51240, "GBP").
func (m Money) String() string {
	return money.New(m.minor, m.cur).Display()
}
