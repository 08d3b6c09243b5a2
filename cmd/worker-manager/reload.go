package main

import (
	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/compensation"
)

// reloadRates swaps in the table from compensation.rates_file. On any error
// the current table stays in place.
func reloadRates(cfg config.CompensationConfig, rates *compensation.Normalizer, log logger.Logger) error {
	if cfg.RatesFile == "" {
		log.Warn("rate reload requested but compensation.rates_file is not set", nil)
		metrics.RateTableReloads.WithLabelValues("skipped").Inc()
		return nil
	}

	table, err := config.LoadRates(cfg.RatesFile)
	if err == nil {
		var previous *compensation.RateTable
		if previous, err = rates.Reload(table); err == nil {
			metrics.RateTableReloads.WithLabelValues("success").Inc()
			log.Info("exchange rates reloaded", map[string]interface{}{
				"from": previous.Version(),
				"to":   table.Version(),
				"file": cfg.RatesFile,
			})
			return nil
		}
	}

	metrics.RateTableReloads.WithLabelValues("failure").Inc()
	log.Error("exchange rate reload failed, keeping current table", map[string]interface{}{
		"file":    cfg.RatesFile,
		"current": rates.Table().Version(),
		"error":   err.Error(),
	})
	return err
}
