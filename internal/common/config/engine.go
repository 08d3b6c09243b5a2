package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/matching"
)

// BuildScoringConfig applies the configured tunables and emphasis overrides
// to the default scoring configuration.
func BuildScoringConfig(m MatchingConfig) (matching.ScoringConfig, error) {
	sc := matching.DefaultScoringConfig()
	sc.RoleLevelStep = m.RoleLevelStep
	sc.SameCountryScore = m.SameCountryScore
	sc.CrossCountryScore = m.CrossCountryScore
	sc.NeutralScore = m.NeutralScore

	seenLevels := make(map[matching.RoleLevel]string, len(m.AssessmentEmphasis))
	for rawLevel, names := range m.AssessmentEmphasis {
		lvl, ok := matching.ParseRoleLevel(rawLevel)
		if !ok {
			return sc, errors.NewInvalidConfigurationError(fmt.Sprintf("matching.assessment_emphasis: unknown role level %q", rawLevel))
		}
		if prev, dup := seenLevels[lvl]; dup {
			return sc, errors.NewInvalidConfigurationError(fmt.Sprintf("matching.assessment_emphasis: %q and %q name the same role level", prev, rawLevel))
		}
		seenLevels[lvl] = rawLevel
		dims, err := parseAssessmentDimensions(names)
		if err != nil {
			return sc, err
		}
		sc.AssessmentEmphasis[lvl] = dims
	}
	seenDivisions := make(map[string]string, len(m.DivisionEmphasis))
	for division, names := range m.DivisionEmphasis {
		key := matching.NormalizeDivision(division)
		if prev, dup := seenDivisions[key]; dup {
			return sc, errors.NewInvalidConfigurationError(fmt.Sprintf("matching.division_emphasis: %q and %q name the same division", prev, division))
		}
		seenDivisions[key] = division
		dims, err := parseAssessmentDimensions(names)
		if err != nil {
			return sc, err
		}
		sc.DivisionEmphasis[key] = dims
	}
	return sc, nil
}

func parseAssessmentDimensions(names []string) ([]matching.AssessmentDimension, error) {
	dims := make([]matching.AssessmentDimension, 0, len(names))
	for _, name := range names {
		d, ok := matching.ParseAssessmentDimension(name)
		if !ok {
			return nil, errors.NewInvalidConfigurationError(fmt.Sprintf("unknown assessment dimension %q", name))
		}
		dims = append(dims, d)
	}
	return dims, nil
}

// BuildWeightTable uses the configured weights, or the default table when
// none are configured.
func BuildWeightTable(m MatchingConfig) (*matching.WeightTable, error) {
	if len(m.Weights) == 0 {
		if m.WeightsVersion != "" && m.WeightsVersion != matching.DefaultWeightsVersion {
			return nil, errors.NewInvalidWeightTableError(fmt.Sprintf("version %q has no weights configured", m.WeightsVersion))
		}
		return matching.DefaultWeightTable(), nil
	}
	return matching.NewWeightTableFromMap(m.WeightsVersion, m.Weights)
}

// BuildEngine returns a ready match engine or a configuration error.
func BuildEngine(cfg *Config) (*matching.Engine, error) {
	scoring, err := BuildScoringConfig(cfg.Matching)
	if err != nil {
		return nil, err
	}
	weights, err := BuildWeightTable(cfg.Matching)
	if err != nil {
		return nil, err
	}
	return matching.NewEngine(scoring, weights)
}

// BuildRateTable reads the rates file when configured, else the inline
// rates, else the built-in table.
func BuildRateTable(c CompensationConfig) (*compensation.RateTable, error) {
	if c.RatesFile != "" {
		return LoadRates(c.RatesFile)
	}
	if len(c.Rates) == 0 {
		return compensation.DefaultRateTable(), nil
	}
	return compensation.NewRateTable(c.RatesVersion, c.ReferenceCurrency, c.Rates)
}

// BuildAligner returns a compensation aligner over a fresh normalizer.
func BuildAligner(cfg *Config) (*compensation.Aligner, error) {
	table, err := BuildRateTable(cfg.Compensation)
	if err != nil {
		return nil, err
	}
	return compensation.NewAligner(compensation.NewNormalizer(table), cfg.Compensation.Tolerance)
}

// BuildBadgeTable overlays configured badges on the defaults. Every badge
// must be complete.
func BuildBadgeTable(cfg *Config) (*compensation.BadgeTable, error) {
	badges := compensation.DefaultBadges()
	for name, b := range cfg.Compensation.Badges {
		a := compensation.Alignment(strings.ToLower(strings.TrimSpace(name)))
		if !a.Valid() {
			return nil, errors.NewIncompleteBadgeTableError(fmt.Sprintf("unknown alignment %q", name))
		}
		badges[a] = compensation.BadgeInfo{Icon: b.Icon, Label: b.Label, Color: b.Color}
	}
	return compensation.NewBadgeTable(badges)
}

// ratesFile is the layout of compensation.rates_file.
type ratesFile struct {
	Version           string             `mapstructure:"version"`
	ReferenceCurrency string             `mapstructure:"reference_currency"`
	Rates             map[string]float64 `mapstructure:"rates"`
}

// LoadRates reads a standalone rate table. The format follows the extension.
func LoadRates(path string) (*compensation.RateTable, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.NewInvalidRateTableError(fmt.Sprintf("read %s: %v", path, err))
	}

	var rf ratesFile
	if err := v.Unmarshal(&rf); err != nil {
		return nil, errors.NewInvalidRateTableError(fmt.Sprintf("decode %s: %v", path, err))
	}
	return compensation.NewRateTable(rf.Version, rf.ReferenceCurrency, rf.Rates)
}
