package compensation

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync/atomic"

	"talent-match-workers/internal/common/errors"
)

// DefaultRatesVersion names the built-in rate table.
const DefaultRatesVersion = "2024-q4"

// RateTable converts amounts into a reference currency. A rate is the value
// of one unit of the currency expressed in the reference currency, so the
// reference itself has rate 1. Tables are immutable.
type RateTable struct {
	version   string
	reference Currency
	rates     map[Currency]float64
}

// NewRateTable validates codes and rates. Every rate must be positive and
// finite, and the reference currency must be present with rate 1.
func NewRateTable(version, reference string, rates map[string]float64) (*RateTable, error) {
	if strings.TrimSpace(version) == "" {
		return nil, errors.NewInvalidRateTableError("version is required")
	}
	ref, ok := ParseCurrency(reference)
	if !ok {
		return nil, errors.NewInvalidRateTableError(fmt.Sprintf("unknown reference currency %q", reference))
	}

	parsed := make(map[Currency]float64, len(rates))
	for code, rate := range rates {
		c, ok := ParseCurrency(code)
		if !ok {
			return nil, errors.NewInvalidRateTableError(fmt.Sprintf("unknown currency %q", code))
		}
		if _, dup := parsed[c]; dup {
			return nil, errors.NewInvalidRateTableError(fmt.Sprintf("duplicate currency %q", c))
		}
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
			return nil, errors.NewInvalidRateTableError(fmt.Sprintf("rate for %s must be positive, got %v", c, rate))
		}
		parsed[c] = rate
	}

	refRate, ok := parsed[ref]
	if !ok {
		return nil, errors.NewInvalidRateTableError(fmt.Sprintf("reference currency %s has no rate", ref))
	}
	if refRate != 1 {
		return nil, errors.NewInvalidRateTableError(fmt.Sprintf("reference currency %s must have rate 1, got %v", ref, refRate))
	}

	return &RateTable{version: strings.TrimSpace(version), reference: ref, rates: parsed}, nil
}

// DefaultRates returns the built-in EUR-referenced rates.
func DefaultRates() map[string]float64 {
	return map[string]float64{
		"EUR": 1,
		"USD": 0.92,
		"GBP": 1.17,
		"CHF": 1.05,
		"JPY": 0.0061,
		"CNY": 0.127,
		"HKD": 0.118,
		"SGD": 0.69,
		"AED": 0.25,
	}
}

// DefaultRateTable returns the built-in table.
func DefaultRateTable() *RateTable {
	t, err := NewRateTable(DefaultRatesVersion, string(EUR), DefaultRates())
	if err != nil {
		panic(err)
	}
	return t
}

func (t *RateTable) Version() string { return t.version }

func (t *RateTable) Reference() Currency { return t.reference }

// Rate returns the multiplier for c.
func (t *RateTable) Rate(c Currency) (float64, bool) {
	r, ok := t.rates[c]
	return r, ok
}

// Currencies lists the covered currencies in code order.
func (t *RateTable) Currencies() []Currency {
	out := make([]Currency, 0, len(t.rates))
	for c := range t.rates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Convert expresses amount, given in c, in the reference currency.
func (t *RateTable) Convert(amount float64, c Currency) (float64, bool) {
	rate, ok := t.rates[c]
	if !ok {
		return 0, false
	}
	return amount * rate, true
}

// Normalizer serves the current rate table. Reload swaps the whole table
// at once; readers take a snapshot and never observe a partial update.
type Normalizer struct {
	current atomic.Pointer[RateTable]
}

func NewNormalizer(table *RateTable) *Normalizer {
	n := &Normalizer{}
	if table == nil {
		table = DefaultRateTable()
	}
	n.current.Store(table)
	return n
}

// Table returns the table in effect.
func (n *Normalizer) Table() *RateTable {
	return n.current.Load()
}

// Normalize converts amount from the currency named by code into the
// reference currency. Unknown codes report false.
func (n *Normalizer) Normalize(amount float64, code string) (float64, bool) {
	c, ok := ParseCurrency(code)
	if !ok {
		return 0, false
	}
	return n.Table().Convert(amount, c)
}

// Reload replaces the table and returns the one it replaced.
func (n *Normalizer) Reload(table *RateTable) (*RateTable, error) {
	if table == nil {
		return nil, errors.NewInvalidRateTableError("rate table is required")
	}
	return n.current.Swap(table), nil
}
