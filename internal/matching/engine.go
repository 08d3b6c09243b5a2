package matching

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/models"
)

// Engine evaluates talent/opportunity pairs against one scoring
// configuration and one weight table.
type Engine struct {
	scoring ScoringConfig
	weights *WeightTable
	version string
}

func newEngine(scoring ScoringConfig, weights *WeightTable) *Engine {
	return &Engine{
		scoring: scoring,
		weights: weights,
		version: fmt.Sprintf("weights-%s-%s", weights.Version(), fingerprint(weights, scoring)[:8]),
	}
}

// NewEngine validates the scoring configuration and binds it to a weight table.
func NewEngine(scoring ScoringConfig, weights *WeightTable) (*Engine, error) {
	if weights == nil {
		return nil, errors.NewInvalidWeightTableError("weight table is required")
	}
	for name, v := range map[string]float64{
		"role level step":     scoring.RoleLevelStep,
		"same country score":  scoring.SameCountryScore,
		"cross country score": scoring.CrossCountryScore,
		"neutral score":       scoring.NeutralScore,
	} {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return nil, errors.NewInvalidConfigurationError(fmt.Sprintf("%s must be within [0,100], got %v", name, v))
		}
	}
	return newEngine(scoring, weights), nil
}

// DefaultEngine uses the default scoring configuration and the v1 weights.
func DefaultEngine() *Engine {
	return newEngine(DefaultScoringConfig(), DefaultWeightTable())
}

// Version identifies the scoring behavior: the weight table version plus a
// short hash of the weights and scoring tunables. Cached results are keyed by it.
func (e *Engine) Version() string {
	return e.version
}

func (e *Engine) Weights() *WeightTable { return e.weights }

// CalculateMatch normalizes both records and scores every configured dimension.
func (e *Engine) CalculateMatch(talent models.TalentRecord, opportunity models.OpportunityRecord) MatchResult {
	return e.Evaluate(NormalizeTalent(talent), NormalizeOpportunity(opportunity))
}

// Evaluate scores an already normalized pair.
func (e *Engine) Evaluate(t Talent, o Opportunity) MatchResult {
	scores := make(map[Dimension]float64, e.weights.Len())
	for _, entry := range e.weights.entries {
		if scorer, ok := ScorerFor(entry.Dimension); ok {
			scores[entry.Dimension] = scorer(t, o, e.scoring)
		}
	}
	return Aggregate(scores, e.weights, e.scoring.NeutralScore)
}

// RankedOpportunity is one entry of RankOpportunities.
type RankedOpportunity struct {
	OpportunityID string      `json:"opportunityId"`
	Result        MatchResult `json:"result"`
}

// RankedTalent is one entry of RankTalents.
type RankedTalent struct {
	TalentID string      `json:"talentId"`
	Result   MatchResult `json:"result"`
}

// RankOpportunities scores one talent against every opportunity using at
// most parallelism goroutines. Results are ordered by score descending,
// then id ascending.
func (e *Engine) RankOpportunities(ctx context.Context, talent models.TalentRecord, opportunities []models.OpportunityRecord, parallelism int) ([]RankedOpportunity, error) {
	t := NormalizeTalent(talent)
	out := make([]RankedOpportunity, len(opportunities))

	var g errgroup.Group
	g.SetLimit(limit(parallelism))
	for i := range opportunities {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			o := NormalizeOpportunity(opportunities[i])
			out[i] = RankedOpportunity{OpportunityID: o.ID, Result: e.Evaluate(t, o)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Result.OverallScore != out[j].Result.OverallScore {
			return out[i].Result.OverallScore > out[j].Result.OverallScore
		}
		return out[i].OpportunityID < out[j].OpportunityID
	})
	return out, nil
}

// RankTalents scores every talent against one opportunity. Ordering matches
// RankOpportunities.
func (e *Engine) RankTalents(ctx context.Context, opportunity models.OpportunityRecord, talents []models.TalentRecord, parallelism int) ([]RankedTalent, error) {
	o := NormalizeOpportunity(opportunity)
	out := make([]RankedTalent, len(talents))

	var g errgroup.Group
	g.SetLimit(limit(parallelism))
	for i := range talents {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			t := NormalizeTalent(talents[i])
			out[i] = RankedTalent{TalentID: t.ID, Result: e.Evaluate(t, o)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Result.OverallScore != out[j].Result.OverallScore {
			return out[i].Result.OverallScore > out[j].Result.OverallScore
		}
		return out[i].TalentID < out[j].TalentID
	})
	return out, nil
}

func limit(parallelism int) int {
	if parallelism <= 0 {
		return 1
	}
	return parallelism
}
