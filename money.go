package vestbook

import (
	"cosmossdk.io/math"
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a display monetary value. Ledger amounts stay exact
// integers; Money only exists at the reporting edge, to price token units in
// a fiat currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a monetary value in the given ISO currency.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// currency returns the money's currency.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the formatted representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Currency returns the ISO currency code.
func (m Money) Currency() string { return m.cur }

// IsZero reports whether the value is zero.
func (m Money) IsZero() bool { return m.value.IsZero() }

// Add sums two monetary values of the same currency.
func (m Money) Add(n Money) Money {
	if m.cur == "" {
		m.cur = n.cur
	}
	if n.cur != "" && m.cur != n.cur {
		panic("currency mismatch " + m.cur + "!=" + n.cur)
	}
	return Money{value: m.value.Add(n.value), cur: m.cur}
}

// Units converts a base-unit amount into display units given the asset's
// number of decimals (e.g. amount 1500000, 6 decimals -> 1.5).
func Units(amount math.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(amount.BigInt(), -decimals)
}

// Value prices a base-unit amount at a per-unit price in the given
// currency.
func Value(amount math.Int, decimals int32, price decimal.Decimal, currency string) Money {
	return M(Units(amount, decimals).Mul(price), currency)
}
