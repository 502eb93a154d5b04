package board

import (
	"fx_orders/internal/domain"
	"fx_orders/internal/stream"

	"github.com/shopspring/decimal"
)

// Orders is the live order book, replay-cached: a new subscriber immediately
// receives the current book.
func (b *Board) Orders() *stream.Subject[domain.OrderBook] {
	return b.orders.book
}

// Rates is the live rate table, replay-cached
func (b *Board) Rates() *stream.Subject[domain.RateTable] {
	return b.rates.table
}

// OrderIDs is the live sorted id set; it emits only when the set itself
// changes, not on field-level updates.
func (b *Board) OrderIDs() *stream.Subject[[]domain.OrderID] {
	return b.orders.ids.Subject
}

// CurrencyCodes is the live sorted currency code set; rate value updates that
// leave the set unchanged do not emit.
func (b *Board) CurrencyCodes() *stream.Subject[[]domain.Currency] {
	return b.rates.codes.Subject
}

// Total is the live grand total in the base currency, deduplicated on the
// resulting number.
func (b *Board) Total() *stream.Subject[decimal.Decimal] {
	return b.total.Subject
}

// orderEntry is the projection of one id out of the book
type orderEntry struct {
	ord domain.Order
	ok  bool
}

func (e orderEntry) equal(other orderEntry) bool {
	return e.ok == other.ok && e.ord.Equal(other.ord)
}

// OrderView derives the live converted view of one order: the order record
// joined with the rate resolved for its currency. The join recomputes only
// when that record or that resolved rate value changes; edits to unrelated
// orders or unrelated currencies are absorbed by the intermediate dedups.
//
// For an id absent from the book the view is the zero OrderView (Missing()
// reports true); updates targeting unknown ids therefore never surface here.
//
// The caller owns the returned derivation and must Close it; closing
// releases only this view's join subscriptions, never the shared stores.
func (b *Board) OrderView(id domain.OrderID) *stream.Derived[domain.OrderView] {
	entry := stream.Map[domain.OrderBook, orderEntry](
		b.orders.book,
		func(book domain.OrderBook) orderEntry {
			ord, ok := book[id]
			return orderEntry{ord: ord, ok: ok}
		},
		orderEntry.equal,
	)

	// Resolved rate for the order's current currency. Re-resolves when the
	// record changes currency as well as when the table moves.
	rate := stream.Combine[orderEntry, domain.RateTable, decimal.Decimal](
		entry,
		b.rates.table,
		func(e orderEntry, table domain.RateTable) decimal.Decimal {
			return table[e.ord.Currency]
		},
		decimal.Decimal.Equal,
	)

	view := stream.Combine[orderEntry, decimal.Decimal, domain.OrderView](
		entry,
		rate,
		func(e orderEntry, r decimal.Decimal) domain.OrderView {
			if !e.ok {
				return domain.OrderView{}
			}
			return domain.OrderView{
				Order:     e.ord,
				BasePrice: domain.ToBase(e.ord.Price, r),
			}
		},
		domain.OrderView.Equal,
	)
	view.AddCleanup(rate.Close, entry.Close)
	return view
}

// CurrencyRate derives the live rate for one currency, deduplicated on the
// value. An unknown code reads as zero until a rate change creates it.
//
// The caller owns the returned derivation and must Close it.
func (b *Board) CurrencyRate(code domain.Currency) *stream.Derived[decimal.Decimal] {
	return stream.Map[domain.RateTable, decimal.Decimal](
		b.rates.table,
		func(table domain.RateTable) decimal.Decimal {
			return table[code]
		},
		decimal.Decimal.Equal,
	)
}
