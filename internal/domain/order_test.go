package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToBase(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		rate  float64
		want  string
	}{
		{"rate of one", 10, 1, "10"},
		{"divides by rate", 10, 2, "5"},
		{"fractional rate", 9, 0.5, "18"},
		{"zero price", 0, 2, "0"},
		{"zero rate yields zero", 10, 0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToBase(decimal.NewFromFloat(tt.price), decimal.NewFromFloat(tt.rate))
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ToBase(%v, %v) = %s, want %s", tt.price, tt.rate, got, want)
			}
		})
	}
}

func TestRateTable_Codes(t *testing.T) {
	table := RateTable{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.NewFromFloat(0.9),
		"JPY": decimal.NewFromInt(150),
	}

	codes := table.Codes()
	want := []Currency{"EUR", "JPY", "USD"}
	if len(codes) != len(want) {
		t.Fatalf("expected %v, got %v", want, codes)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("expected sorted codes %v, got %v", want, codes)
		}
	}
}

func TestRateTable_CloneIsIndependent(t *testing.T) {
	table := RateTable{"USD": decimal.NewFromInt(1)}
	clone := table.Clone()

	clone["EUR"] = decimal.NewFromFloat(0.9)
	if _, ok := table["EUR"]; ok {
		t.Error("mutating the clone must not affect the original")
	}
}

func TestOrderBook_CloneIsIndependent(t *testing.T) {
	book := OrderBook{"a": {ID: "a", Price: decimal.NewFromInt(10), Currency: "USD"}}
	clone := book.Clone()

	ord := clone["a"]
	ord.Price = decimal.NewFromInt(99)
	clone["a"] = ord
	clone["b"] = Order{ID: "b"}

	if !book["a"].Price.Equal(decimal.NewFromInt(10)) {
		t.Error("mutating the clone must not affect the original")
	}
	if len(book) != 1 {
		t.Error("inserting into the clone must not grow the original")
	}
}

func TestOrderBook_Total(t *testing.T) {
	rates := RateTable{"USD": decimal.NewFromInt(2), "EUR": decimal.NewFromInt(4)}
	book := OrderBook{
		"a": {ID: "a", Price: decimal.NewFromInt(10), Currency: "USD"},
		"b": {ID: "b", Price: decimal.NewFromInt(20), Currency: "USD"},
		"c": {ID: "c", Price: decimal.NewFromInt(8), Currency: "EUR"},
	}

	// 10/2 + 20/2 + 8/4
	if total := book.Total(rates); !total.Equal(decimal.NewFromInt(17)) {
		t.Errorf("total = %s, want 17", total)
	}

	if total := (OrderBook{}).Total(rates); !total.IsZero() {
		t.Errorf("empty book total = %s, want 0", total)
	}
}

func TestOrderBook_TotalSkipsUnknownCurrency(t *testing.T) {
	book := OrderBook{"a": {ID: "a", Price: decimal.NewFromInt(10), Currency: "XXX"}}
	if total := book.Total(RateTable{}); !total.IsZero() {
		t.Errorf("unknown currency should contribute zero, got %s", total)
	}
}

func TestOrder_Equal(t *testing.T) {
	a := Order{ID: "a", Title: "T", Price: decimal.NewFromInt(10), Currency: "USD"}

	// Numerically equal decimals with different representations.
	b := a
	b.Price = decimal.RequireFromString("10.00")
	if !a.Equal(b) {
		t.Error("orders with numerically equal prices must compare equal")
	}

	c := a
	c.Price = decimal.NewFromInt(11)
	if a.Equal(c) {
		t.Error("orders with different prices must not compare equal")
	}
}

func TestOrderView_Missing(t *testing.T) {
	if !(OrderView{}).Missing() {
		t.Error("zero view must report missing")
	}
	v := OrderView{Order: Order{ID: "a"}, BasePrice: decimal.NewFromInt(1)}
	if v.Missing() {
		t.Error("populated view must not report missing")
	}
}
