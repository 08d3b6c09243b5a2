package compensation

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-match-workers/internal/common/errors"
)

func TestParseCurrency(t *testing.T) {
	c, ok := ParseCurrency(" chf ")
	assert.True(t, ok)
	assert.Equal(t, CHF, c)

	_, ok = ParseCurrency("BTC")
	assert.False(t, ok)
}

func TestDefaultRateTable(t *testing.T) {
	table := DefaultRateTable()
	assert.Equal(t, EUR, table.Reference())
	assert.Equal(t, AllCurrencies, sortedLike(table.Currencies()))

	v, ok := table.Convert(100, USD)
	assert.True(t, ok)
	assert.InDelta(t, 92, v, 1e-9)
}

func TestNewRateTableRejects(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		reference string
		rates     map[string]float64
	}{
		{"no version", "", "EUR", map[string]float64{"EUR": 1}},
		{"unknown reference", "v", "ZZZ", map[string]float64{"EUR": 1}},
		{"reference missing", "v", "EUR", map[string]float64{"USD": 0.9}},
		{"reference not one", "v", "EUR", map[string]float64{"EUR": 1.1}},
		{"zero rate", "v", "EUR", map[string]float64{"EUR": 1, "USD": 0}},
		{"infinite rate", "v", "EUR", map[string]float64{"EUR": 1, "USD": math.Inf(1)}},
		{"unknown code", "v", "EUR", map[string]float64{"EUR": 1, "XAU": 2000}},
		{"duplicate code", "v", "EUR", map[string]float64{"EUR": 1, "usd": 0.9, "USD": 0.9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewRateTable(tt.version, tt.reference, tt.rates)
			assert.Nil(t, table)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRateTable))
		})
	}
}

func TestNormalizerReload(t *testing.T) {
	n := NewNormalizer(DefaultRateTable())

	_, ok := n.Normalize(100, "XYZ")
	assert.False(t, ok)

	next, err := NewRateTable("next", "USD", map[string]float64{"USD": 1, "EUR": 1.1})
	require.NoError(t, err)
	prev, err := n.Reload(next)
	require.NoError(t, err)
	assert.Equal(t, DefaultRatesVersion, prev.Version())

	v, ok := n.Normalize(100, "eur")
	assert.True(t, ok)
	assert.InDelta(t, 110, v, 1e-9)

	_, ok = n.Normalize(100, "GBP")
	assert.False(t, ok)

	_, err = n.Reload(nil)
	assert.Error(t, err)
	assert.Equal(t, "next", n.Table().Version())
}

func TestNormalizerConcurrentReload(t *testing.T) {
	aligner := DefaultAligner()
	alt, err := NewRateTable("alt", "EUR", DefaultRates())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				r := aligner.CalculateCompensationAlignment(some(60000), some(50000), some(70000), "EUR", "EUR")
				assert.Equal(t, WithinRange, r.Alignment)
			}
		}()
	}
	for j := 0; j < 50; j++ {
		if j%2 == 0 {
			_, _ = aligner.Rates().Reload(alt)
		} else {
			_, _ = aligner.Rates().Reload(DefaultRateTable())
		}
	}
	wg.Wait()
}

func sortedLike(cs []Currency) []Currency {
	order := make(map[Currency]int, len(AllCurrencies))
	for i, c := range AllCurrencies {
		order[c] = i
	}
	out := make([]Currency, len(AllCurrencies))
	for _, c := range cs {
		out[order[c]] = c
	}
	return out
}
