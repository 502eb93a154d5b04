// Package action defines the closed set of inputs folded into board state.
package action

import (
	"fx_orders/internal/domain"

	"github.com/shopspring/decimal"
)

// Kind names an action variant for logging and the audit journal
type Kind string

const (
	KindInit           Kind = "init"
	KindAddOrder       Kind = "add_order"
	KindUpdatePrice    Kind = "update_price"
	KindUpdateCurrency Kind = "update_currency"
	KindRateChange     Kind = "rate_change"
)

// Action is one member of the closed variant. The unexported marker keeps
// the set sealed to this package; every fold must switch over all five kinds
// and panic on anything else, so a new kind fails loudly wherever it is not
// yet handled.
type Action interface {
	Kind() Kind
	isAction()
}

// Init is the synthetic first action. It carries no payload; it exists so
// every fold produces an initial emission before any real event occurs.
type Init struct{}

func (Init) Kind() Kind { return KindInit }
func (Init) isAction()  {}

// AddOrder requests insertion of one new randomly-seeded order
type AddOrder struct{}

func (AddOrder) Kind() Kind { return KindAddOrder }
func (AddOrder) isAction()  {}

// UpdatePrice replaces the price of the order at ID
type UpdatePrice struct {
	ID    domain.OrderID
	Value decimal.Decimal
}

func (UpdatePrice) Kind() Kind { return KindUpdatePrice }
func (UpdatePrice) isAction()  {}

// UpdateCurrency replaces the currency of the order at ID
type UpdateCurrency struct {
	ID    domain.OrderID
	Value domain.Currency
}

func (UpdateCurrency) Kind() Kind { return KindUpdateCurrency }
func (UpdateCurrency) isAction()  {}

// RateChange sets or creates the exchange rate for Currency
type RateChange struct {
	Currency domain.Currency
	Value    decimal.Decimal
}

func (RateChange) Kind() Kind { return KindRateChange }
func (RateChange) isAction()  {}
