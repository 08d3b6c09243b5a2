package matching

import (
	"fmt"
	"math"

	"talent-match-workers/internal/common/errors"
)

// WeightSumTolerance is the allowed deviation of a weight table's sum from 1.
const WeightSumTolerance = 1e-6

// DefaultWeightsVersion names the built-in weight table.
const DefaultWeightsVersion = "v1"

// WeightEntry assigns a weight to one dimension.
type WeightEntry struct {
	Dimension Dimension `json:"dimension" mapstructure:"dimension"`
	Weight    float64   `json:"weight" mapstructure:"weight"`
}

// WeightTable is an ordered, validated set of dimension weights. It is
// immutable once built and safe for concurrent reads.
type WeightTable struct {
	version string
	entries []WeightEntry
}

// NewWeightTable validates entries and returns a table that keeps their order.
func NewWeightTable(version string, entries []WeightEntry) (*WeightTable, error) {
	if version == "" {
		return nil, errors.NewInvalidWeightTableError("version is required")
	}
	if len(entries) == 0 {
		return nil, errors.NewInvalidWeightTableError("table has no dimensions")
	}

	seen := make(map[Dimension]struct{}, len(entries))
	sum := 0.0
	for _, e := range entries {
		if !e.Dimension.Valid() {
			return nil, errors.NewInvalidWeightTableError(fmt.Sprintf("unknown dimension %q", e.Dimension))
		}
		if _, dup := seen[e.Dimension]; dup {
			return nil, errors.NewInvalidWeightTableError(fmt.Sprintf("duplicate dimension %q", e.Dimension))
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
			return nil, errors.NewInvalidWeightTableError(fmt.Sprintf("weight for %q must be a non-negative number", e.Dimension))
		}
		seen[e.Dimension] = struct{}{}
		sum += e.Weight
	}
	if math.Abs(sum-1) > WeightSumTolerance {
		return nil, errors.NewInvalidWeightTableError(fmt.Sprintf("weights sum to %.6f, expected 1.0", sum))
	}

	return &WeightTable{
		version: version,
		entries: append([]WeightEntry(nil), entries...),
	}, nil
}

// NewWeightTableFromMap builds a table from a dimension map, ordering the
// entries canonically. Used by configuration, where maps have no order.
func NewWeightTableFromMap(version string, weights map[string]float64) (*WeightTable, error) {
	entries := make([]WeightEntry, 0, len(weights))
	for _, d := range AllDimensions {
		if w, ok := weights[string(d)]; ok {
			entries = append(entries, WeightEntry{Dimension: d, Weight: w})
		}
	}
	for name := range weights {
		if !Dimension(name).Valid() {
			return nil, errors.NewInvalidWeightTableError(fmt.Sprintf("unknown dimension %q", name))
		}
	}
	return NewWeightTable(version, entries)
}

// DefaultWeightEntries returns the v1 weights.
func DefaultWeightEntries() []WeightEntry {
	return []WeightEntry{
		{Dimension: DimensionRoleLevel, Weight: 0.20},
		{Dimension: DimensionGeography, Weight: 0.15},
		{Dimension: DimensionDivision, Weight: 0.20},
		{Dimension: DimensionExperience, Weight: 0.20},
		{Dimension: DimensionLanguages, Weight: 0.15},
		{Dimension: DimensionAssessment, Weight: 0.10},
	}
}

// DefaultWeightTable returns the built-in v1 table.
func DefaultWeightTable() *WeightTable {
	t, err := NewWeightTable(DefaultWeightsVersion, DefaultWeightEntries())
	if err != nil {
		panic(err)
	}
	return t
}

func (t *WeightTable) Version() string { return t.version }

// Entries returns a copy of the table in order.
func (t *WeightTable) Entries() []WeightEntry {
	return append([]WeightEntry(nil), t.entries...)
}

func (t *WeightTable) Len() int { return len(t.entries) }

// Weight returns the weight of d, or false when d is not configured.
func (t *WeightTable) Weight(d Dimension) (float64, bool) {
	for _, e := range t.entries {
		if e.Dimension == d {
			return e.Weight, true
		}
	}
	return 0, false
}
