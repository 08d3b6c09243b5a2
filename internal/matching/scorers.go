package matching

import (
	"math"
)

// ScoringConfig holds the tunable parameters of the dimension scorers.
type ScoringConfig struct {
	// RoleLevelStep is the penalty per ordinal level of distance.
	RoleLevelStep float64
	// SameCountryScore is awarded for a different city in the same country.
	SameCountryScore float64
	// CrossCountryScore is awarded for a different country unless the
	// talent is internationally mobile.
	CrossCountryScore float64
	// NeutralScore is used whenever the data needed to compare is absent.
	NeutralScore float64
	// AssessmentEmphasis lists the assessment dimensions each role level leans on.
	AssessmentEmphasis map[RoleLevel][]AssessmentDimension
	// DivisionEmphasis adds assessment dimensions for specific divisions.
	DivisionEmphasis map[string][]AssessmentDimension
}

func DefaultScoringConfig() ScoringConfig {
	front := []AssessmentDimension{AssessClientRelationship, AssessSalesPerformance, AssessBrandAmbassadorship}
	management := []AssessmentDimension{AssessLeadership, AssessOperationalExcellence, AssessClientRelationship}
	executive := []AssessmentDimension{AssessLeadership, AssessOperationalExcellence, AssessBrandAmbassadorship}
	technical := []AssessmentDimension{AssessProductKnowledge}

	return ScoringConfig{
		RoleLevelStep:     15,
		SameCountryScore:  60,
		CrossCountryScore: 0,
		NeutralScore:      50,
		AssessmentEmphasis: map[RoleLevel][]AssessmentDimension{
			L0: front, L1: front, L2: front,
			L3: management, L4: management, L5: management,
			L6: executive, L7: executive, L8: executive,
		},
		DivisionEmphasis: map[string][]AssessmentDimension{
			"watches":      technical,
			"jewelry":      technical,
			"fine_jewelry": technical,
			"high_jewelry": technical,
		},
	}
}

// Scorer computes one dimension's sub-score in [0,100].
type Scorer func(t Talent, o Opportunity, cfg ScoringConfig) float64

var scorers = map[Dimension]Scorer{
	DimensionRoleLevel:  ScoreRoleLevel,
	DimensionGeography:  ScoreGeography,
	DimensionDivision:   ScoreDivision,
	DimensionExperience: ScoreExperience,
	DimensionLanguages:  ScoreLanguages,
	DimensionAssessment: ScoreAssessment,
}

// ScorerFor returns the scorer registered for d.
func ScorerFor(d Dimension) (Scorer, bool) {
	s, ok := scorers[d]
	return s, ok
}

// ScoreRoleLevel rewards an opportunity level inside the talent's accepted
// set and decays linearly with ordinal distance otherwise. Without target
// levels the talent's current level is the accepted set.
func ScoreRoleLevel(t Talent, o Opportunity, cfg ScoringConfig) float64 {
	target, ok := o.Level.Level.Get()
	if !ok {
		return cfg.NeutralScore
	}

	accepted := t.TargetLevels
	if len(accepted) == 0 {
		if current, ok := t.CurrentLevel.Level.Get(); ok {
			accepted = []RoleLevel{current}
		}
	}
	if len(accepted) == 0 {
		return cfg.NeutralScore
	}

	distance := math.MaxInt
	for _, lvl := range accepted {
		d := int(lvl) - int(target)
		if d < 0 {
			d = -d
		}
		distance = min(distance, d)
	}
	if distance == 0 {
		return 100
	}
	return clampScore(100 - float64(distance)*cfg.RoleLevelStep)
}

// ScoreGeography takes the best score over the talent's current and target
// locations.
func ScoreGeography(t Talent, o Opportunity, cfg ScoringConfig) float64 {
	if o.Location.Empty() {
		return cfg.NeutralScore
	}

	candidates := make([]Place, 0, len(t.TargetLocations)+1)
	if !t.CurrentLocation.Empty() {
		candidates = append(candidates, t.CurrentLocation)
	}
	candidates = append(candidates, t.TargetLocations...)
	if len(candidates) == 0 {
		return cfg.NeutralScore
	}

	best := 0.0
	for i, p := range candidates {
		isTarget := i > 0 || t.CurrentLocation.Empty()
		best = math.Max(best, placeScore(p, o.Location, isTarget, t.Mobility, cfg))
		if best == 100 {
			break
		}
	}
	return best
}

func placeScore(p, job Place, isTarget bool, mobility Mobility, cfg ScoringConfig) float64 {
	city, hasCity := p.City.Get()
	jobCity, jobHasCity := job.City.Get()
	country, hasCountry := p.Country.Get()
	jobCountry, jobHasCountry := job.Country.Get()

	if hasCity && jobHasCity && city == jobCity {
		return 100
	}
	// A target like "France" reads as a city-less, country-wide preference.
	if isTarget && hasCity && !hasCountry && jobHasCountry && city == jobCountry {
		return 100
	}

	if mobility == MobilityLocal {
		return 0
	}

	if !hasCountry || !jobHasCountry {
		return cfg.NeutralScore
	}
	if country == jobCountry {
		return cfg.SameCountryScore
	}
	if mobility == MobilityInternational {
		return cfg.SameCountryScore
	}
	return cfg.CrossCountryScore
}

// ScoreDivision is the Jaccard similarity between the talent's divisions and
// the opportunity's single division, scaled to 0-100.
func ScoreDivision(t Talent, o Opportunity, cfg ScoringConfig) float64 {
	if len(t.Divisions) == 0 {
		return 0
	}
	division, ok := o.Division.Get()
	if !ok {
		return cfg.NeutralScore
	}

	intersection := 0
	for _, d := range t.Divisions {
		if d == division {
			intersection = 1
			break
		}
	}
	union := len(t.Divisions) + 1 - intersection
	return 100 * float64(intersection) / float64(union)
}

// ScoreExperience is vacuously satisfied without a requirement and scales
// linearly up to it otherwise.
func ScoreExperience(t Talent, o Opportunity, cfg ScoringConfig) float64 {
	required, ok := o.MinExperienceYears.Get()
	if !ok || required <= 0 {
		return 100
	}
	years, ok := t.YearsInLuxury.Get()
	if !ok {
		return cfg.NeutralScore
	}
	return clampScore(100 * math.Min(1, float64(years)/float64(required)))
}

// ScoreLanguages is the share of required languages the talent speaks.
func ScoreLanguages(t Talent, o Opportunity, _ ScoringConfig) float64 {
	if len(o.RequiredLanguages) == 0 {
		return 100
	}
	spoken := make(map[string]struct{}, len(t.Languages))
	for _, l := range t.Languages {
		spoken[l] = struct{}{}
	}
	covered := 0
	for _, l := range o.RequiredLanguages {
		if _, ok := spoken[l]; ok {
			covered++
		}
	}
	return 100 * float64(covered) / float64(len(o.RequiredLanguages))
}

// ScoreAssessment averages the talent's scores on the assessment dimensions
// the opportunity emphasizes. Missing data is neutral, not zero.
func ScoreAssessment(t Talent, o Opportunity, cfg ScoringConfig) float64 {
	if len(t.Assessments) == 0 {
		return cfg.NeutralScore
	}

	emphasis := EmphasisFor(o, cfg)
	if len(emphasis) == 0 {
		return cfg.NeutralScore
	}

	sum, n := 0.0, 0
	for _, dim := range emphasis {
		if v, ok := t.Assessments[dim]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return cfg.NeutralScore
	}
	return clampScore(sum / float64(n))
}

// EmphasisFor derives the emphasized assessment dimensions from the
// opportunity's role level and division, in canonical order.
func EmphasisFor(o Opportunity, cfg ScoringConfig) []AssessmentDimension {
	wanted := make(map[AssessmentDimension]bool)
	if lvl, ok := o.Level.Level.Get(); ok {
		for _, d := range cfg.AssessmentEmphasis[lvl] {
			wanted[d] = true
		}
	}
	if div, ok := o.Division.Get(); ok {
		for _, d := range cfg.DivisionEmphasis[div] {
			wanted[d] = true
		}
	}

	out := make([]AssessmentDimension, 0, len(wanted))
	for _, d := range AllAssessmentDimensions {
		if wanted[d] {
			out = append(out, d)
		}
	}
	return out
}
