package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/models"
)

const baseYAML = `
app:
  name: talent-match-workers
  environment: test
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: talent
    user: matcher
  elasticsearch:
    addresses: ["http://localhost:9200"]
  redis:
    address: localhost:6379
workers:
  calculate-match-score:
    enabled: true
  rank-talents:
    enabled: false
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeFile(t, "config.yaml", baseYAML))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "http://localhost:9200", cfg.Database.Elasticsearch.GetURL())
	assert.Equal(t, "opportunities", cfg.Database.Elasticsearch.OpportunityIndex)
	assert.Equal(t, 10, cfg.Database.Redis.PoolSize)
	assert.Equal(t, 3000, cfg.Database.Redis.IOTimeout)
	assert.Equal(t, "v1", cfg.Matching.WeightsVersion)
	assert.Equal(t, 15.0, cfg.Matching.RoleLevelStep)
	assert.Equal(t, 50.0, cfg.Matching.NeutralScore)
	assert.Equal(t, 8, cfg.Matching.BatchParallelism)
	assert.Equal(t, 0.10, cfg.Compensation.Tolerance)
	assert.Equal(t, "EUR", cfg.Compensation.ReferenceCurrency)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "talent-match-workers", cfg.Observability.ServiceName)

	worker := GetWorkerConfig(cfg, "calculate-match-score")
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 3, worker.MaxRetries)
	assert.False(t, IsWorkerEnabled(cfg, "rank-talents"))
	assert.True(t, IsWorkerEnabled(cfg, "not-configured"))
}

func TestLoadFromFileKeepsExplicitZero(t *testing.T) {
	cfg, err := LoadFromFile(writeFile(t, "config.yaml", baseYAML+`
matching:
  neutral_score: 0
compensation:
  tolerance: 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Matching.NeutralScore)
	assert.Equal(t, 0.0, cfg.Compensation.Tolerance)
}

func TestLoadFromFileEnvironment(t *testing.T) {
	t.Setenv("DATABASE_REDIS_ADDRESS", "cache.internal:6380")
	t.Setenv("PG_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeFile(t, "config.yaml", baseYAML))
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", cfg.Database.Redis.Address)

	withPlaceholder := `
app:
  name: talent-match-workers
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: talent
    user: matcher
    password: ${PG_PASSWORD}
  elasticsearch:
    url: http://localhost:9200
  redis:
    address: localhost:6379
`
	cfg, err = LoadFromFile(writeFile(t, "config.yaml", withPlaceholder))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
}

func TestLoadFromFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		message string
	}{
		{
			name:    "missing broker",
			yaml:    "database:\n  postgres:\n    host: h\n    database: d\n    user: u\n  elasticsearch:\n    url: http://es:9200\n  redis:\n    address: r:6379\n",
			message: "Camunda.BrokerAddress failed required",
		},
		{
			name:    "tolerance out of range",
			yaml:    baseYAML + "compensation:\n  tolerance: 1.5\n",
			message: "Compensation.Tolerance failed lt=1",
		},
		{
			name:    "bad log level",
			yaml:    baseYAML + "logging:\n  level: loud\n",
			message: "Logging.Level failed oneof",
		},
		{
			name:    "inline rates without version",
			yaml:    baseYAML + "compensation:\n  rates:\n    EUR: 1\n",
			message: "compensation.rates_version is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeFile(t, "config.yaml", tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestBuildEngine(t *testing.T) {
	cfg, err := LoadFromFile(writeFile(t, "config.yaml", baseYAML))
	require.NoError(t, err)

	engine, err := BuildEngine(cfg)
	require.NoError(t, err)
	assert.Regexp(t, `^weights-v1-[0-9a-f]{8}$`, engine.Version())

	cfg.Matching.WeightsVersion = "v2"
	cfg.Matching.Weights = map[string]float64{"role_level": 0.6, "languages": 0.6}
	_, err = BuildEngine(cfg)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidWeightTable))

	cfg.Matching.Weights = map[string]float64{"role_level": 0.5, "languages": 0.5}
	engine, err = BuildEngine(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.Weights().Len())

	cfg.Matching.Weights = nil
	_, err = BuildEngine(cfg)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidWeightTable))
}

func TestBuildScoringConfigOverrides(t *testing.T) {
	sc, err := BuildScoringConfig(MatchingConfig{
		RoleLevelStep:      20,
		NeutralScore:       40,
		AssessmentEmphasis: map[string][]string{"l2": {"leadership"}},
		DivisionEmphasis:   map[string][]string{"Leather Goods": {"product-knowledge"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, sc.RoleLevelStep)
	assert.Len(t, sc.AssessmentEmphasis[2], 1)
	assert.Len(t, sc.DivisionEmphasis["leather_goods"], 1)

	_, err = BuildScoringConfig(MatchingConfig{AssessmentEmphasis: map[string][]string{"L9": {"leadership"}}})
	assert.True(t, errors.IsConfigurationError(err))

	_, err = BuildScoringConfig(MatchingConfig{DivisionEmphasis: map[string][]string{"watches": {"charisma"}}})
	assert.True(t, errors.IsConfigurationError(err))
}

func TestBuildScoringConfigRejectsDuplicateKeys(t *testing.T) {
	tests := []struct {
		name string
		m    MatchingConfig
		want string
	}{
		{
			name: "role level spelled twice",
			m:    MatchingConfig{AssessmentEmphasis: map[string][]string{"L3": {"leadership"}, "3": {"product_knowledge"}}},
			want: "name the same role level",
		},
		{
			name: "division spelled twice",
			m:    MatchingConfig{DivisionEmphasis: map[string][]string{"Leather Goods": {"leadership"}, "leather-goods": {"product_knowledge"}}},
			want: "name the same division",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				_, err := BuildScoringConfig(tt.m)
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestBuildAligner(t *testing.T) {
	cfg, err := LoadFromFile(writeFile(t, "config.yaml", baseYAML+`
compensation:
  rates_version: fixed
  rates:
    EUR: 1
    USD: 0.5
`))
	require.NoError(t, err)

	aligner, err := BuildAligner(cfg)
	require.NoError(t, err)
	assert.Equal(t, "fixed", aligner.Rates().Table().Version())

	lo, hi := 50000.0, 70000.0
	amount := 120000.0
	result := aligner.AlignRecords(
		models.TalentRecord{Compensation: &models.SalaryExpectation{Amount: &amount, Currency: "USD"}},
		models.OpportunityRecord{Budget: models.Budget{Min: &lo, Max: &hi, Currency: "EUR"}},
	)
	assert.Equal(t, compensation.WithinRange, result.Alignment)
}

func TestLoadRates(t *testing.T) {
	path := writeFile(t, "rates.yaml", `
version: "2025-01"
reference_currency: EUR
rates:
  EUR: 1
  USD: 0.9
  GBP: 1.2
`)
	table, err := LoadRates(path)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", table.Version())
	rate, ok := table.Rate(compensation.GBP)
	assert.True(t, ok)
	assert.Equal(t, 1.2, rate)

	bad := writeFile(t, "rates.yaml", "version: x\nreference_currency: EUR\nrates:\n  USD: 0.9\n")
	_, err = LoadRates(bad)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRateTable))

	_, err = LoadRates(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRateTable))
}

func TestBuildBadgeTable(t *testing.T) {
	cfg := &Config{}
	table, err := BuildBadgeTable(cfg)
	require.NoError(t, err)
	assert.Equal(t, "green", table.Resolve(compensation.WithinRange).Color)

	cfg.Compensation.Badges = map[string]BadgeConfig{"above_range": {Icon: "arrow-up", Label: "Above"}}
	_, err = BuildBadgeTable(cfg)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIncompleteBadgeTable))

	cfg.Compensation.Badges = map[string]BadgeConfig{"sideways": {Icon: "x", Label: "y", Color: "z"}}
	_, err = BuildBadgeTable(cfg)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIncompleteBadgeTable))
}
