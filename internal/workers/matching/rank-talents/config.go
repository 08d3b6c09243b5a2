// internal/workers/matching/rank-talents/config.go
package ranktalents

import (
	"time"

	"talent-match-workers/internal/common/config"
)

// DefaultMaxItems bounds the shortlist when the job does not.
const DefaultMaxItems = 50

type Config struct {
	Timeout      time.Duration
	Parallelism  int
	MaxBatchSize int
	MaxItems     int
}

func LoadConfig(cfg *config.Config) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:      config.GetDuration(wc.Timeout),
		Parallelism:  cfg.Matching.BatchParallelism,
		MaxBatchSize: cfg.Matching.MaxBatchSize,
		MaxItems:     DefaultMaxItems,
	}
}
