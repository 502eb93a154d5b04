package board

import (
	"fmt"
	"log/slog"
	"slices"

	"fx_orders/internal/action"
	"fx_orders/internal/domain"
	"fx_orders/internal/stream"
)

// Generator produces the randomly-seeded order inserted by an add action.
// Implementations must only pick currencies from the known set so that every
// order's currency always has a rate entry.
type Generator interface {
	NewOrder(known []domain.Currency) domain.Order
}

// orderStore owns the order book. Its fold is the only writer; everything
// else reads immutable snapshots through the book subject.
type orderStore struct {
	book   *stream.Subject[domain.OrderBook]
	ids    *stream.Derived[[]domain.OrderID]
	gen    Generator
	logger *slog.Logger
}

func newOrderStore(gen Generator, logger *slog.Logger) *orderStore {
	book := stream.NewSubject(domain.OrderBook{}, nil)
	ids := stream.Map[domain.OrderBook, []domain.OrderID](
		book,
		domain.OrderBook.IDs,
		slices.Equal[[]domain.OrderID, domain.OrderID],
	)
	return &orderStore{
		book:   book,
		ids:    ids,
		gen:    gen,
		logger: logger,
	}
}

// apply folds one action into the book. The switch is exhaustive over the
// action variant; rate actions are explicit no-ops here because the rate
// store owns them.
func (s *orderStore) apply(act action.Action, known []domain.Currency) {
	switch a := act.(type) {
	case action.Init:
		// Identity transition; re-emit so downstream folds have a first value.
		s.book.Set(s.book.Get())

	case action.AddOrder:
		book := s.book.Get()
		ord := s.gen.NewOrder(known)
		if _, exists := book[ord.ID]; exists {
			// Ids are never overwritten; a generator collision is dropped.
			s.logger.Error("duplicate order id from generator", slog.String("id", string(ord.ID)))
			return
		}
		next := book.Clone()
		next[ord.ID] = ord
		s.book.Set(next)

	case action.UpdatePrice:
		book := s.book.Get()
		ord, ok := book[a.ID]
		if !ok {
			s.logger.Warn("price update ignored", slog.String("id", string(a.ID)), slog.Any("error", domain.ErrUnknownOrder))
			return
		}
		if ord.Price.Equal(a.Value) {
			return
		}
		next := book.Clone()
		ord.Price = a.Value
		next[a.ID] = ord
		s.book.Set(next)

	case action.UpdateCurrency:
		book := s.book.Get()
		ord, ok := book[a.ID]
		if !ok {
			s.logger.Warn("currency update ignored", slog.String("id", string(a.ID)), slog.Any("error", domain.ErrUnknownOrder))
			return
		}
		if ord.Currency == a.Value {
			return
		}
		next := book.Clone()
		ord.Currency = a.Value
		next[a.ID] = ord
		s.book.Set(next)

	case action.RateChange:
		// Owned by the rate store.

	default:
		panic(fmt.Sprintf("order store: unhandled action %T", act))
	}
}

func (s *orderStore) close() {
	s.ids.Close()
}
