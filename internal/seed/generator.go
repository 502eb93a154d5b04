// Package seed generates the randomly-seeded orders inserted by add
// actions. The board treats it as an opaque data source.
package seed

import (
	"math/rand"

	"fx_orders/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Generator produces random orders. It only ever picks currencies from the
// known set it is handed, so every generated order has a resolvable rate.
type Generator struct {
	titles   []string
	maxPrice float64
	rnd      *rand.Rand
}

// NewGenerator returns a generator drawing titles and prices from the given
// bounds. The seed fixes the random sequence, which keeps runs reproducible.
func NewGenerator(titles []string, maxPrice float64, randSeed int64) *Generator {
	if len(titles) == 0 {
		titles = []string{"Untitled order"}
	}
	if maxPrice <= 0 {
		maxPrice = 100
	}
	return &Generator{
		titles:   titles,
		maxPrice: maxPrice,
		rnd:      rand.New(rand.NewSource(randSeed)),
	}
}

// NewOrder generates one order with a fresh id, a random title, a random
// price rounded to cents, and a currency drawn from the known set.
func (g *Generator) NewOrder(known []domain.Currency) domain.Order {
	return domain.Order{
		ID:       domain.OrderID(uuid.NewString()),
		Title:    g.titles[g.rnd.Intn(len(g.titles))],
		Price:    decimal.NewFromFloat(g.rnd.Float64() * g.maxPrice).Round(2),
		Currency: known[g.rnd.Intn(len(known))],
	}
}
