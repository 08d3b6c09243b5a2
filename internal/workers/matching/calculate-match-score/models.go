// internal/workers/matching/calculate-match-score/models.go
package calculatematchscore

import (
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
)

// Input names each side either by id or inline. An inline record wins.
type Input struct {
	TalentID            string                    `json:"talentId,omitempty"`
	OpportunityID       string                    `json:"opportunityId,omitempty"`
	Talent              *models.TalentRecord      `json:"talent,omitempty"`
	Opportunity         *models.OpportunityRecord `json:"opportunity,omitempty"`
	IncludeCompensation bool                      `json:"includeCompensation,omitempty"`
}

type Output struct {
	EvaluationID  string                    `json:"evaluationId"`
	TalentID      string                    `json:"talentId"`
	OpportunityID string                    `json:"opportunityId"`
	MatchScore    int                       `json:"matchScore"`
	Breakdown     []matching.BreakdownEntry `json:"breakdown"`
	EngineVersion string                    `json:"engineVersion"`
	Cached        bool                      `json:"cached"`
	Compensation  *compensation.Summary     `json:"compensation,omitempty"`
}
