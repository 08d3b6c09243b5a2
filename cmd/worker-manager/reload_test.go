package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/compensation"
)

func writeRates(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReloadRates(t *testing.T) {
	path := writeRates(t, `
version: "2025-q1"
reference_currency: EUR
rates:
  EUR: 1
  USD: 0.95
`)
	normalizer := compensation.NewNormalizer(nil)
	before := testutil.ToFloat64(metrics.RateTableReloads.WithLabelValues("success"))

	err := reloadRates(config.CompensationConfig{RatesFile: path}, normalizer, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "2025-q1", normalizer.Table().Version())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateTableReloads.WithLabelValues("success")))

	v, ok := normalizer.Normalize(100, "USD")
	require.True(t, ok)
	assert.InDelta(t, 95, v, 1e-9)
}

func TestReloadRatesKeepsTableOnError(t *testing.T) {
	path := writeRates(t, `
version: "broken"
reference_currency: EUR
rates:
  EUR: 1
  USD: -2
`)
	normalizer := compensation.NewNormalizer(nil)
	before := testutil.ToFloat64(metrics.RateTableReloads.WithLabelValues("failure"))

	err := reloadRates(config.CompensationConfig{RatesFile: path}, normalizer, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Equal(t, compensation.DefaultRatesVersion, normalizer.Table().Version())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RateTableReloads.WithLabelValues("failure")))
}

func TestReloadRatesWithoutFile(t *testing.T) {
	normalizer := compensation.NewNormalizer(nil)
	require.NoError(t, reloadRates(config.CompensationConfig{}, normalizer, logger.NewTestLogger(t)))
	assert.Equal(t, compensation.DefaultRatesVersion, normalizer.Table().Version())
}
