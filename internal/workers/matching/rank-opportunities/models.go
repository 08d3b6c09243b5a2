// internal/workers/matching/rank-opportunities/models.go
package rankopportunities

import (
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
	"talent-match-workers/internal/store"
)

// Input carries candidates inline or a search to retrieve them. Inline
// candidates win when both are present.
type Input struct {
	TalentID      string                     `json:"talentId,omitempty"`
	Talent        *models.TalentRecord       `json:"talent,omitempty"`
	Opportunities []models.OpportunityRecord `json:"opportunities,omitempty"`
	Search        *store.SearchQuery         `json:"search,omitempty"`
	MaxItems      int                        `json:"maxItems,omitempty"`
}

type RankedItem struct {
	Rank          int                       `json:"rank"`
	OpportunityID string                    `json:"opportunityId"`
	MatchScore    int                       `json:"matchScore"`
	Breakdown     []matching.BreakdownEntry `json:"breakdown"`
}

type Output struct {
	EvaluationID        string       `json:"evaluationId"`
	TalentID            string       `json:"talentId"`
	RankedOpportunities []RankedItem `json:"rankedOpportunities"`
	TotalCandidates     int          `json:"totalCandidates"`
	EngineVersion       string       `json:"engineVersion"`
}
