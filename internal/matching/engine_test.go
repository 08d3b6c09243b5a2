package matching

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/models"
)

func TestCalculateMatchPerfect(t *testing.T) {
	result := DefaultEngine().CalculateMatch(perfectTalent(), perfectOpportunity())

	assert.Equal(t, 100, result.OverallScore)
	for _, b := range result.Breakdown {
		assert.Equal(t, 100.0, b.Score, b.Dimension)
	}
}

func TestCalculateMatchBreakdownShape(t *testing.T) {
	engine := DefaultEngine()
	pairs := []struct {
		talent models.TalentRecord
		opp    models.OpportunityRecord
	}{
		{perfectTalent(), perfectOpportunity()},
		{models.TalentRecord{}, models.OpportunityRecord{}},
		{models.TalentRecord{ID: "t", RoleLevel: "nonsense"}, perfectOpportunity()},
		{perfectTalent(), models.OpportunityRecord{ID: "o", MinExperienceYears: intPtr(-2)}},
	}

	for i, p := range pairs {
		t.Run(fmt.Sprintf("pair %d", i), func(t *testing.T) {
			result := engine.CalculateMatch(p.talent, p.opp)

			assert.GreaterOrEqual(t, result.OverallScore, 0)
			assert.LessOrEqual(t, result.OverallScore, 100)
			require.Len(t, result.Breakdown, len(AllDimensions))

			sum := 0.0
			for j, b := range result.Breakdown {
				assert.Equal(t, AllDimensions[j], b.Dimension)
				assert.GreaterOrEqual(t, b.Score, 0.0)
				assert.LessOrEqual(t, b.Score, 100.0)
				sum += b.WeightedScore
			}
			assert.Equal(t, int(math.Round(sum)), result.OverallScore)
		})
	}
}

func TestCalculateMatchDeterministic(t *testing.T) {
	engine := DefaultEngine()
	talent := perfectTalent()
	talent.Divisions = []string{"watches", "fashion", "jewelry"}
	talent.Languages = []string{"english"}
	opp := perfectOpportunity()
	opp.Location = models.Location{City: "Lyon", Country: "France"}

	first := engine.CalculateMatch(talent, opp)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, engine.CalculateMatch(talent, opp))
	}
}

func TestCalculateMatchLanguageCoverage(t *testing.T) {
	talent := perfectTalent()
	talent.Languages = []string{"English"}

	result := DefaultEngine().CalculateMatch(talent, perfectOpportunity())
	assert.Equal(t, 50.0, breakdownScore(result, DimensionLanguages))

	opp := perfectOpportunity()
	opp.RequiredLanguages = nil
	result = DefaultEngine().CalculateMatch(talent, opp)
	assert.Equal(t, 100.0, breakdownScore(result, DimensionLanguages))
}

func TestCalculateMatchExperienceMonotone(t *testing.T) {
	engine := DefaultEngine()
	opp := perfectOpportunity()
	opp.MinExperienceYears = intPtr(10)

	prev := -1
	for y := 0; y <= 15; y++ {
		talent := perfectTalent()
		talent.YearsInLuxury = intPtr(y)
		score := engine.CalculateMatch(talent, opp).OverallScore
		assert.GreaterOrEqual(t, score, prev, "years=%d", y)
		prev = score
	}
}

func TestNewEngineRejectsInvalidScoring(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.SameCountryScore = 140

	_, err := NewEngine(cfg, DefaultWeightTable())
	assert.True(t, errors.IsConfigurationError(err))

	_, err = NewEngine(DefaultScoringConfig(), nil)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidWeightTable))
}

func TestEngineHonorsCustomWeights(t *testing.T) {
	table, err := NewWeightTable("lang-only", []WeightEntry{{DimensionLanguages, 1}})
	require.NoError(t, err)
	engine, err := NewEngine(DefaultScoringConfig(), table)
	require.NoError(t, err)

	talent := perfectTalent()
	talent.Languages = []string{"en"}
	result := engine.CalculateMatch(talent, perfectOpportunity())

	assert.Equal(t, 50, result.OverallScore)
	assert.Len(t, result.Breakdown, 1)
	assert.Equal(t, "weights-lang-only", engine.Version())
}

func TestRankOpportunities(t *testing.T) {
	far := perfectOpportunity()
	far.ID = "o-far"
	far.Location = models.Location{City: "Tokyo", Country: "Japan"}

	tieA := perfectOpportunity()
	tieA.ID = "o-b"
	tieB := perfectOpportunity()
	tieB.ID = "o-a"

	ranked, err := DefaultEngine().RankOpportunities(context.Background(), perfectTalent(),
		[]models.OpportunityRecord{far, tieA, tieB}, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "o-a", ranked[0].OpportunityID)
	assert.Equal(t, "o-b", ranked[1].OpportunityID)
	assert.Equal(t, "o-far", ranked[2].OpportunityID)
	assert.Greater(t, ranked[1].Result.OverallScore, ranked[2].Result.OverallScore)
}

func TestRankTalents(t *testing.T) {
	junior := perfectTalent()
	junior.ID = "t-junior"
	junior.YearsInLuxury = intPtr(1)
	junior.Preferences.TargetRoleLevels = []string{"L1"}

	ranked, err := DefaultEngine().RankTalents(context.Background(), perfectOpportunity(),
		[]models.TalentRecord{junior, perfectTalent()}, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "t-1", ranked[0].TalentID)
	assert.Equal(t, 100, ranked[0].Result.OverallScore)
	assert.Equal(t, "t-junior", ranked[1].TalentID)
}

func TestRankStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DefaultEngine().RankTalents(ctx, perfectOpportunity(), []models.TalentRecord{perfectTalent()}, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func breakdownScore(r MatchResult, d Dimension) float64 {
	for _, b := range r.Breakdown {
		if b.Dimension == d {
			return b.Score
		}
	}
	return -1
}

func TestEngineVersionTracksTunables(t *testing.T) {
	base := DefaultEngine()
	assert.Regexp(t, `^weights-v1-[0-9a-f]{8}$`, base.Version())

	same, err := NewEngine(DefaultScoringConfig(), DefaultWeightTable())
	require.NoError(t, err)
	assert.Equal(t, base.Version(), same.Version())

	steeper := DefaultScoringConfig()
	steeper.RoleLevelStep = 40
	steep, err := NewEngine(steeper, DefaultWeightTable())
	require.NoError(t, err)
	assert.NotEqual(t, base.Version(), steep.Version())

	emphasis := DefaultScoringConfig()
	emphasis.DivisionEmphasis = map[string][]AssessmentDimension{"watches": {AssessLeadership}}
	emphasized, err := NewEngine(emphasis, DefaultWeightTable())
	require.NoError(t, err)
	assert.NotEqual(t, base.Version(), emphasized.Version())

	entries := DefaultWeightEntries()
	entries[0].Weight, entries[1].Weight = 0.15, 0.20
	reweighted, err := NewWeightTable(DefaultWeightsVersion, entries)
	require.NoError(t, err)
	retuned, err := NewEngine(DefaultScoringConfig(), reweighted)
	require.NoError(t, err)
	assert.NotEqual(t, base.Version(), retuned.Version())

	talent, opportunity := perfectTalent(), perfectOpportunity()
	opportunity.RoleLevel = "L5"
	assert.NotEqual(t,
		base.CalculateMatch(talent, opportunity).OverallScore,
		steep.CalculateMatch(talent, opportunity).OverallScore)
}
