// Package board implements the reactive core: one context object owning the
// action dispatch path, the two state folds, and the shared derivations.
package board

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"fx_orders/internal/action"
	"fx_orders/internal/domain"
	"fx_orders/internal/infra"
	"fx_orders/internal/stream"

	"github.com/shopspring/decimal"
)

// Journal receives one audit record per dispatched action. Append failures
// are logged, never fatal; the journal is not part of state propagation.
type Journal interface {
	Append(rec *domain.ActionRecord) error
}

// Config carries everything a Board needs at construction
type Config struct {
	// SeedRates is the fixed starting rate table. Required, must be non-empty.
	SeedRates domain.RateTable

	// Generator seeds new orders for add actions. Required.
	Generator Generator

	// Journal is the optional audit sink for dispatched actions
	Journal Journal

	// Logger for logging. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics is the optional counter sink for dispatch observability
	Metrics *infra.Metrics
}

// Board is the live order board: it folds actions into the order book and
// the rate table and keeps the derived values current. One Board is
// constructed per process (or per test) and torn down with Close; nothing is
// package-global.
//
// Propagation is synchronous and run-to-completion: a dispatch returns only
// after the fold, every affected derivation, and every subscriber have seen
// the change. A mutex serializes dispatches so callers on different
// goroutines cannot interleave partially-applied updates.
type Board struct {
	mu sync.Mutex

	orders *orderStore
	rates  *rateStore
	total  *stream.Derived[decimal.Decimal]

	journal Journal
	logger  *slog.Logger
	metrics *infra.Metrics

	nextSeq uint64
	closed  bool
}

// New constructs a Board, seeds the rate table, and dispatches the synthetic
// init action so every fold has produced its first emission before New
// returns.
func New(cfg Config) (*Board, error) {
	if len(cfg.SeedRates) == 0 {
		return nil, fmt.Errorf("board: seed rate table must not be empty")
	}
	if cfg.Generator == nil {
		return nil, fmt.Errorf("board: generator is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := &Board{
		orders:  newOrderStore(cfg.Generator, logger),
		rates:   newRateStore(cfg.SeedRates),
		journal: cfg.Journal,
		logger:  logger,
		metrics: cfg.Metrics,
	}

	// The grand total inherently joins the whole book with the whole table;
	// it recomputes on any change to either and dedups on the resulting sum.
	b.total = stream.Combine[domain.OrderBook, domain.RateTable, decimal.Decimal](
		b.orders.book,
		b.rates.table,
		domain.OrderBook.Total,
		decimal.Decimal.Equal,
	)

	b.dispatch(action.Init{})
	return b, nil
}

// Close cancels every internal subscription. Derived values stop updating;
// further dispatches are dropped with a warning.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.total.Close()
	b.orders.close()
	b.rates.close()
}

// AddOrder inserts one new randomly-seeded order
func (b *Board) AddOrder() {
	b.dispatch(action.AddOrder{})
}

// UpdatePrice sets the price of the order at id. Unknown ids are a no-op.
func (b *Board) UpdatePrice(id domain.OrderID, value decimal.Decimal) {
	b.dispatch(action.UpdatePrice{ID: id, Value: value})
}

// UpdateCurrency sets the currency of the order at id. Unknown ids are a no-op.
func (b *Board) UpdateCurrency(id domain.OrderID, value domain.Currency) {
	b.dispatch(action.UpdateCurrency{ID: id, Value: value})
}

// RateChange sets or creates the exchange rate for a currency. Values are
// trusted as-is; a zero or negative rate is stored unvalidated.
func (b *Board) RateChange(currency domain.Currency, value decimal.Decimal) {
	b.dispatch(action.RateChange{Currency: currency, Value: value})
}

// dispatch is the single merge point: every external event source funnels
// through here, so actions reach both folds in one strict order.
func (b *Board) dispatch(act action.Action) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		b.logger.Warn("action dropped, board closed", slog.String("kind", string(act.Kind())))
		return
	}

	begin := time.Now()
	b.nextSeq++
	seq := b.nextSeq

	if b.journal != nil {
		if err := b.journal.Append(record(seq, act)); err != nil {
			b.logger.Error("journal append failed", slog.Uint64("seq", seq), slog.Any("error", err))
			if b.metrics != nil {
				b.metrics.RecordError()
			}
		}
	}

	// Both folds see every action; each ignores the kinds the other owns.
	known := b.rates.table.Get().Codes()
	b.orders.apply(act, known)
	b.rates.apply(act)

	if b.metrics != nil {
		b.metrics.RecordAction(time.Since(begin).Nanoseconds())
	}
	b.logger.Debug("action applied",
		slog.Uint64("seq", seq),
		slog.String("kind", string(act.Kind())),
	)
}

// Sync runs fn while holding the dispatch lock. Subscribers that need to
// attach to several streams without a dispatch interleaving (the websocket
// adapter does) set up inside fn.
func (b *Board) Sync(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

// record flattens an action into its audit row
func record(seq uint64, act action.Action) *domain.ActionRecord {
	rec := &domain.ActionRecord{
		Seq:       seq,
		Kind:      string(act.Kind()),
		CreatedAt: time.Now(),
	}
	switch a := act.(type) {
	case action.Init, action.AddOrder:
	case action.UpdatePrice:
		rec.OrderID = string(a.ID)
		rec.Value = a.Value.String()
	case action.UpdateCurrency:
		rec.OrderID = string(a.ID)
		rec.Value = string(a.Value)
	case action.RateChange:
		rec.Currency = string(a.Currency)
		rec.Value = a.Value.String()
	default:
		panic(fmt.Sprintf("journal: unhandled action %T", act))
	}
	return rec
}

// DumpState writes a JSON snapshot of both stores for post-mortems
func (b *Board) DumpState(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	data := struct {
		LastSeq uint64           `json:"last_seq"`
		Orders  domain.OrderBook `json:"orders"`
		Rates   domain.RateTable `json:"rates"`
	}{
		LastSeq: b.nextSeq,
		Orders:  b.orders.book.Get(),
		Rates:   b.rates.table.Get(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
