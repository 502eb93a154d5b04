package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// OrderID uniquely identifies one purchase order line. IDs are generated,
// never user-supplied.
type OrderID string

// Order represents a single purchase order line
type Order struct {
	ID       OrderID         `json:"id"`
	Title    string          `json:"title"` // Fixed at creation, never edited
	Price    decimal.Decimal `json:"price"`
	Currency Currency        `json:"currency"`
}

// Equal reports whether two orders hold the same values.
// decimal fields are compared numerically, not structurally.
func (o Order) Equal(other Order) bool {
	return o.ID == other.ID &&
		o.Title == other.Title &&
		o.Currency == other.Currency &&
		o.Price.Equal(other.Price)
}

// OrderBook maps order ids to orders. IDs are unique and, once added, never
// removed; the book only grows or has field-level updates.
type OrderBook map[OrderID]Order

// Clone returns an independent copy of the book
func (b OrderBook) Clone() OrderBook {
	out := make(OrderBook, len(b))
	for id, o := range b {
		out[id] = o
	}
	return out
}

// IDs returns the order ids sorted for stable comparison
func (b OrderBook) IDs() []OrderID {
	ids := make([]OrderID, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Total sums every order's price converted to the base currency. It is a
// pure function of the current book and rate table; an order whose currency
// is missing from the table contributes zero.
func (b OrderBook) Total(rates RateTable) decimal.Decimal {
	total := decimal.Zero
	for _, o := range b {
		total = total.Add(ToBase(o.Price, rates[o.Currency]))
	}
	return total
}

// OrderView is an order joined with its price converted to the base
// currency. It is never stored; it is always recomputed from current state.
type OrderView struct {
	Order
	BasePrice decimal.Decimal `json:"base_price"`
}

// Missing reports the documented "absent" result: a view projected for an id
// that is not present in the book.
func (v OrderView) Missing() bool {
	return v.ID == ""
}

// Equal reports whether two views hold the same values
func (v OrderView) Equal(other OrderView) bool {
	return v.Order.Equal(other.Order) && v.BasePrice.Equal(other.BasePrice)
}
