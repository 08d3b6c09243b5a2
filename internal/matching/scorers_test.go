package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talent-match-workers/internal/common/optional"
)

func place(city, country string) Place {
	p := Place{}
	if city != "" {
		p.City = optional.Some(city)
	}
	if country != "" {
		p.Country = optional.Some(country)
	}
	return p
}

func level(l RoleLevel) LevelCategory {
	return LevelCategory{Level: optional.Some(l), Raw: l.String()}
}

func TestScoreRoleLevel(t *testing.T) {
	cfg := DefaultScoringConfig()

	tests := []struct {
		name     string
		talent   Talent
		opp      Opportunity
		expected float64
	}{
		{"inside target set", Talent{TargetLevels: []RoleLevel{L3, L4}}, Opportunity{Level: level(L4)}, 100},
		{"one level away", Talent{TargetLevels: []RoleLevel{L3}}, Opportunity{Level: level(L4)}, 85},
		{"closest target wins", Talent{TargetLevels: []RoleLevel{L0, L6}}, Opportunity{Level: level(L5)}, 85},
		{"falls back to current level", Talent{CurrentLevel: level(L2)}, Opportunity{Level: level(L4)}, 70},
		{"floors at zero", Talent{TargetLevels: []RoleLevel{L0}}, Opportunity{Level: level(L8)}, 0},
		{"unknown opportunity level", Talent{TargetLevels: []RoleLevel{L3}}, Opportunity{Level: LevelCategory{Raw: "vp"}}, 50},
		{"no accepted levels", Talent{CurrentLevel: LevelCategory{Raw: "?"}}, Opportunity{Level: level(L3)}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ScoreRoleLevel(tt.talent, tt.opp, cfg), 1e-9)
		})
	}
}

func TestScoreGeography(t *testing.T) {
	cfg := DefaultScoringConfig()
	paris := Opportunity{Location: place("paris", "france")}

	tests := []struct {
		name     string
		talent   Talent
		opp      Opportunity
		expected float64
	}{
		{"same city", Talent{CurrentLocation: place("paris", "france")}, paris, 100},
		{"same country", Talent{CurrentLocation: place("lyon", "france"), Mobility: MobilityNational}, paris, 60},
		{"same country but local", Talent{CurrentLocation: place("lyon", "france"), Mobility: MobilityLocal}, paris, 0},
		{"other country national", Talent{CurrentLocation: place("milan", "italy"), Mobility: MobilityNational}, paris, 0},
		{"other country international", Talent{CurrentLocation: place("milan", "italy"), Mobility: MobilityInternational}, paris, 60},
		{"target city wins", Talent{CurrentLocation: place("milan", "italy"), TargetLocations: []Place{place("paris", "")}}, paris, 100},
		{"country-only target", Talent{CurrentLocation: place("milan", "italy"), TargetLocations: []Place{place("france", "")}}, paris, 100},
		{"unknown country", Talent{CurrentLocation: place("lyon", "")}, paris, 50},
		{"unknown country local", Talent{CurrentLocation: place("lyon", ""), Mobility: MobilityLocal}, paris, 0},
		{"no talent location", Talent{}, paris, 50},
		{"no opportunity location", Talent{CurrentLocation: place("paris", "france")}, Opportunity{}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ScoreGeography(tt.talent, tt.opp, cfg), 1e-9)
		})
	}
}

func TestScoreDivision(t *testing.T) {
	cfg := DefaultScoringConfig()
	watches := Opportunity{Division: optional.Some("watches")}

	assert.InDelta(t, 100, ScoreDivision(Talent{Divisions: []string{"watches"}}, watches, cfg), 1e-9)
	assert.InDelta(t, 50, ScoreDivision(Talent{Divisions: []string{"jewelry", "watches"}}, watches, cfg), 1e-9)
	assert.InDelta(t, 0, ScoreDivision(Talent{Divisions: []string{"fashion"}}, watches, cfg), 1e-9)
	assert.InDelta(t, 0, ScoreDivision(Talent{}, watches, cfg), 1e-9)
	assert.InDelta(t, 0, ScoreDivision(Talent{}, Opportunity{}, cfg), 1e-9)
	assert.InDelta(t, 50, ScoreDivision(Talent{Divisions: []string{"watches"}}, Opportunity{}, cfg), 1e-9)
}

func TestScoreExperience(t *testing.T) {
	cfg := DefaultScoringConfig()
	req := func(n int) Opportunity { return Opportunity{MinExperienceYears: optional.Some(n)} }
	years := func(n int) Talent { return Talent{YearsInLuxury: optional.Some(n)} }

	assert.InDelta(t, 100, ScoreExperience(years(0), Opportunity{}, cfg), 1e-9)
	assert.InDelta(t, 100, ScoreExperience(years(0), req(0), cfg), 1e-9)
	assert.InDelta(t, 50, ScoreExperience(Talent{}, req(4), cfg), 1e-9)
	assert.InDelta(t, 50, ScoreExperience(years(2), req(4), cfg), 1e-9)
	assert.InDelta(t, 100, ScoreExperience(years(9), req(4), cfg), 1e-9)

	t.Run("monotone in years", func(t *testing.T) {
		prev := -1.0
		for y := 0; y <= 12; y++ {
			s := ScoreExperience(years(y), req(6), cfg)
			assert.GreaterOrEqual(t, s, prev, "years=%d", y)
			prev = s
		}
	})
}

func TestScoreLanguages(t *testing.T) {
	cfg := DefaultScoringConfig()
	opp := Opportunity{RequiredLanguages: []string{"english", "french"}}

	assert.InDelta(t, 50, ScoreLanguages(Talent{Languages: []string{"english"}}, opp, cfg), 1e-9)
	assert.InDelta(t, 100, ScoreLanguages(Talent{Languages: []string{"english", "french", "italian"}}, opp, cfg), 1e-9)
	assert.InDelta(t, 0, ScoreLanguages(Talent{}, opp, cfg), 1e-9)
	assert.InDelta(t, 100, ScoreLanguages(Talent{}, Opportunity{}, cfg), 1e-9)
}

func TestScoreAssessment(t *testing.T) {
	cfg := DefaultScoringConfig()
	manager := Opportunity{Level: level(L4)}

	t.Run("absent data is neutral", func(t *testing.T) {
		assert.InDelta(t, 50, ScoreAssessment(Talent{}, manager, cfg), 1e-9)
	})

	t.Run("averages emphasized dimensions present", func(t *testing.T) {
		talent := Talent{Assessments: map[AssessmentDimension]float64{
			AssessLeadership:         90,
			AssessClientRelationship: 70,
			AssessSalesPerformance:   10,
		}}
		assert.InDelta(t, 80, ScoreAssessment(talent, manager, cfg), 1e-9)
	})

	t.Run("no emphasized dimension present", func(t *testing.T) {
		talent := Talent{Assessments: map[AssessmentDimension]float64{AssessProductKnowledge: 90}}
		assert.InDelta(t, 50, ScoreAssessment(talent, manager, cfg), 1e-9)
	})

	t.Run("division adds product knowledge", func(t *testing.T) {
		watches := Opportunity{Level: level(L1), Division: optional.Some("watches")}
		assert.Equal(t, []AssessmentDimension{
			AssessClientRelationship,
			AssessProductKnowledge,
			AssessSalesPerformance,
			AssessBrandAmbassadorship,
		}, EmphasisFor(watches, cfg))
	})

	t.Run("unknown level without division", func(t *testing.T) {
		talent := Talent{Assessments: map[AssessmentDimension]float64{AssessLeadership: 90}}
		assert.InDelta(t, 50, ScoreAssessment(talent, Opportunity{}, cfg), 1e-9)
	})
}

func TestEveryDimensionHasAScorer(t *testing.T) {
	for _, d := range AllDimensions {
		_, ok := ScorerFor(d)
		assert.True(t, ok, d)
	}
}
