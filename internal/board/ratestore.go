package board

import (
	"fmt"
	"slices"

	"fx_orders/internal/action"
	"fx_orders/internal/domain"
	"fx_orders/internal/stream"
)

// rateStore owns the currency rate table. Seeded once at construction; rates
// are only ever added or replaced, never removed.
type rateStore struct {
	table *stream.Subject[domain.RateTable]
	codes *stream.Derived[[]domain.Currency]
}

func newRateStore(seed domain.RateTable) *rateStore {
	table := stream.NewSubject(seed.Clone(), nil)
	// The code set changes far less often than rate values; set-equality
	// dedup keeps value-only updates from re-notifying code subscribers.
	codes := stream.Map[domain.RateTable, []domain.Currency](
		table,
		domain.RateTable.Codes,
		slices.Equal[[]domain.Currency, domain.Currency],
	)
	return &rateStore{table: table, codes: codes}
}

// apply folds one action into the table. Order actions are explicit no-ops
// here because the order store owns them.
func (s *rateStore) apply(act action.Action) {
	switch a := act.(type) {
	case action.Init:
		s.table.Set(s.table.Get())

	case action.RateChange:
		table := s.table.Get()
		if current, ok := table[a.Currency]; ok && current.Equal(a.Value) {
			return
		}
		next := table.Clone()
		next[a.Currency] = a.Value
		s.table.Set(next)

	case action.AddOrder, action.UpdatePrice, action.UpdateCurrency:
		// Owned by the order store.

	default:
		panic(fmt.Sprintf("rate store: unhandled action %T", act))
	}
}

func (s *rateStore) close() {
	s.codes.Close()
}
