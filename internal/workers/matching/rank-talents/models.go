// internal/workers/matching/rank-talents/models.go
package ranktalents

import (
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
)

// Input carries talents inline or by id. Inline talents win when both are
// present.
type Input struct {
	OpportunityID string                    `json:"opportunityId,omitempty"`
	Opportunity   *models.OpportunityRecord `json:"opportunity,omitempty"`
	Talents       []models.TalentRecord     `json:"talents,omitempty"`
	TalentIDs     []string                  `json:"talentIds,omitempty"`
	MaxItems      int                       `json:"maxItems,omitempty"`
}

type RankedItem struct {
	Rank       int                       `json:"rank"`
	TalentID   string                    `json:"talentId"`
	MatchScore int                       `json:"matchScore"`
	Breakdown  []matching.BreakdownEntry `json:"breakdown"`
}

type Output struct {
	EvaluationID    string       `json:"evaluationId"`
	OpportunityID   string       `json:"opportunityId"`
	RankedTalents   []RankedItem `json:"rankedTalents"`
	TotalCandidates int          `json:"totalCandidates"`
	EngineVersion   string       `json:"engineVersion"`
}
