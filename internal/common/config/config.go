// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers" validate:"dive"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Matching      MatchingConfig          `mapstructure:"matching"`
	Compensation  CompensationConfig      `mapstructure:"compensation"`
	Cache         CacheConfig             `mapstructure:"cache"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Server        ServerConfig            `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment" validate:"omitempty,oneof=development staging production test"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address" validate:"required,hostname_port"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active" validate:"gte=1"`
	Timeout        int    `mapstructure:"timeout" validate:"gte=1"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout" validate:"gte=1"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	Database       string `mapstructure:"database" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=1"`
	MaxIdle        int    `mapstructure:"max_idle" validate:"gte=0"`
	SSLMode        string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses        []string `mapstructure:"addresses" validate:"dive,url"`
	Username         string   `mapstructure:"username"`
	Password         string   `mapstructure:"password"`
	URL              string   `mapstructure:"url"` // Single URL for backwards compatibility
	OpportunityIndex string   `mapstructure:"opportunity_index" validate:"required"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address      string `mapstructure:"address" validate:"required,hostname_port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db" validate:"gte=0"`
	PoolSize     int    `mapstructure:"pool_size" validate:"gte=0"`
	MinIdleConns int    `mapstructure:"min_idle_conns" validate:"gte=0"`
	DialTimeout  int    `mapstructure:"dial_timeout" validate:"gte=0"` // milliseconds
	IOTimeout    int    `mapstructure:"io_timeout" validate:"gte=0"`   // milliseconds
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active" validate:"gte=0"`
	Timeout       int  `mapstructure:"timeout" validate:"gte=0"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries" validate:"gte=0"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// MatchingConfig tunes the match engine. Weights keys are dimension names.
type MatchingConfig struct {
	WeightsVersion     string              `mapstructure:"weights_version" validate:"required"`
	Weights            map[string]float64  `mapstructure:"weights"`
	RoleLevelStep      float64             `mapstructure:"role_level_step" validate:"gte=0,lte=100"`
	SameCountryScore   float64             `mapstructure:"same_country_score" validate:"gte=0,lte=100"`
	CrossCountryScore  float64             `mapstructure:"cross_country_score" validate:"gte=0,lte=100"`
	NeutralScore       float64             `mapstructure:"neutral_score" validate:"gte=0,lte=100"`
	BatchParallelism   int                 `mapstructure:"batch_parallelism" validate:"gte=1,lte=256"`
	MaxBatchSize       int                 `mapstructure:"max_batch_size" validate:"gte=1"`
	AssessmentEmphasis map[string][]string `mapstructure:"assessment_emphasis"`
	DivisionEmphasis   map[string][]string `mapstructure:"division_emphasis"`
}

// CompensationConfig holds the alignment tolerance and the exchange rates.
// RatesFile, when set, takes precedence over the inline rates and is
// re-read on reload.
type CompensationConfig struct {
	Tolerance         float64                `mapstructure:"tolerance" validate:"gte=0,lt=1"`
	ReferenceCurrency string                 `mapstructure:"reference_currency" validate:"required,len=3"`
	RatesVersion      string                 `mapstructure:"rates_version"`
	Rates             map[string]float64     `mapstructure:"rates"`
	RatesFile         string                 `mapstructure:"rates_file"`
	Badges            map[string]BadgeConfig `mapstructure:"badges"`
}

type BadgeConfig struct {
	Icon  string `mapstructure:"icon"`
	Label string `mapstructure:"label"`
	Color string `mapstructure:"color"`
}

// CacheConfig holds redis TTLs in milliseconds. Zero disables the cache.
type CacheConfig struct {
	ProfileTTL int `mapstructure:"profile_ttl" validate:"gte=0"`
	ResultTTL  int `mapstructure:"result_ttl" validate:"gte=0"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address" validate:"required"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"` // milliseconds
}
