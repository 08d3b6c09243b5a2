// Package matching scores a talent against an opportunity.
//
// Everything in this package is pure: no I/O, no logging, no shared mutable
// state. Configuration objects are built once and read concurrently.
package matching

import (
	"strconv"
	"strings"

	"talent-match-workers/internal/common/optional"
)

// RoleLevel is the ordinal seniority code shared by talents and opportunities.
type RoleLevel int

const (
	L0 RoleLevel = iota
	L1
	L2
	L3
	L4
	L5
	L6
	L7
	L8
)

const (
	MinRoleLevel = L0
	MaxRoleLevel = L8
)

func (r RoleLevel) String() string {
	return "L" + strconv.Itoa(int(r))
}

// ParseRoleLevel accepts "L3", "l3" or "3".
func ParseRoleLevel(s string) (RoleLevel, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "L")
	n, err := strconv.Atoi(s)
	if err != nil || n < int(MinRoleLevel) || n > int(MaxRoleLevel) {
		return 0, false
	}
	return RoleLevel(n), true
}

// LevelCategory is a role level as read from a record: either a known level
// or the raw text of an unrecognized one.
type LevelCategory struct {
	Level optional.Value[RoleLevel]
	Raw   string
}

func (c LevelCategory) Known() bool { return c.Level.Present() }

type Mobility string

const (
	MobilityLocal         Mobility = "local"
	MobilityNational      Mobility = "national"
	MobilityInternational Mobility = "international"
	MobilityUnknown       Mobility = "unknown"
)

func ParseMobility(s string) Mobility {
	switch Mobility(strings.ToLower(strings.TrimSpace(s))) {
	case MobilityLocal:
		return MobilityLocal
	case MobilityNational:
		return MobilityNational
	case MobilityInternational:
		return MobilityInternational
	default:
		return MobilityUnknown
	}
}

// Place is a normalized location. Both parts are lower-cased.
type Place struct {
	City    optional.Value[string]
	Country optional.Value[string]
}

func (p Place) Empty() bool {
	return !p.City.Present() && !p.Country.Present()
}

// Talent is the canonical, comparable shape of a talent record.
type Talent struct {
	ID              string
	CurrentLevel    LevelCategory
	TargetLevels    []RoleLevel
	CurrentLocation Place
	TargetLocations []Place
	Mobility        Mobility
	Divisions       []string
	YearsInLuxury   optional.Value[int]
	Languages       []string
	Assessments     map[AssessmentDimension]float64
}

// Opportunity is the canonical, comparable shape of an opportunity record.
type Opportunity struct {
	ID                 string
	Level              LevelCategory
	Division           optional.Value[string]
	Location           Place
	MinExperienceYears optional.Value[int]
	RequiredLanguages  []string
}

// Dimension names one comparison axis of the match score.
type Dimension string

const (
	DimensionRoleLevel  Dimension = "role_level"
	DimensionGeography  Dimension = "geography"
	DimensionDivision   Dimension = "division"
	DimensionExperience Dimension = "experience"
	DimensionLanguages  Dimension = "languages"
	DimensionAssessment Dimension = "assessment"
)

// AllDimensions is the canonical dimension order.
var AllDimensions = []Dimension{
	DimensionRoleLevel,
	DimensionGeography,
	DimensionDivision,
	DimensionExperience,
	DimensionLanguages,
	DimensionAssessment,
}

func (d Dimension) Valid() bool {
	for _, known := range AllDimensions {
		if d == known {
			return true
		}
	}
	return false
}

// AssessmentDimension names one of the assessment battery scores.
type AssessmentDimension string

const (
	AssessClientRelationship    AssessmentDimension = "client_relationship"
	AssessProductKnowledge      AssessmentDimension = "product_knowledge"
	AssessSalesPerformance      AssessmentDimension = "sales_performance"
	AssessLeadership            AssessmentDimension = "leadership"
	AssessOperationalExcellence AssessmentDimension = "operational_excellence"
	AssessBrandAmbassadorship   AssessmentDimension = "brand_ambassadorship"
)

var AllAssessmentDimensions = []AssessmentDimension{
	AssessClientRelationship,
	AssessProductKnowledge,
	AssessSalesPerformance,
	AssessLeadership,
	AssessOperationalExcellence,
	AssessBrandAmbassadorship,
}

func ParseAssessmentDimension(s string) (AssessmentDimension, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	for _, d := range AllAssessmentDimensions {
		if AssessmentDimension(key) == d {
			return d, true
		}
	}
	return "", false
}

// BreakdownEntry is one dimension's contribution to the overall score.
type BreakdownEntry struct {
	Dimension     Dimension `json:"dimension"`
	Score         float64   `json:"score"`
	Weight        float64   `json:"weight"`
	WeightedScore float64   `json:"weightedScore"`
}

// MatchResult is the explainable output of one talent/opportunity evaluation.
type MatchResult struct {
	OverallScore int              `json:"overallScore"`
	Breakdown    []BreakdownEntry `json:"breakdown"`
}
