package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Currency is a currency code (e.g., "USD")
type Currency string

// RateTable maps a currency code to its exchange rate against the base
// currency. A rate is the number of units of that currency per one unit of
// the base currency. The table is seeded once and only ever grows or has
// values replaced; entries are never removed.
type RateTable map[Currency]decimal.Decimal

// Clone returns an independent copy of the table
func (t RateTable) Clone() RateTable {
	out := make(RateTable, len(t))
	for c, r := range t {
		out[c] = r
	}
	return out
}

// Codes returns the known currency codes sorted for stable comparison
func (t RateTable) Codes() []Currency {
	codes := make([]Currency, 0, len(t))
	for c := range t {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// ToBase converts a price quoted in some currency to the base currency.
// Rates are stored as units-per-base, so conversion divides by the rate.
// A zero rate yields zero rather than a division panic; storing a zero rate
// is allowed and its conversion result is not meaningful.
func ToBase(price, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return price.Div(rate)
}
