// internal/workers/compensation/check-compensation-alignment/models.go
package checkcompensationalignment

import (
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/models"
)

// Input is either raw amounts or a talent/opportunity pair. Naming either
// record switches to the record form, which then needs both.
type Input struct {
	Expectation         *float64 `json:"expectation"`
	MinBudget           *float64 `json:"minBudget"`
	MaxBudget           *float64 `json:"maxBudget"`
	ExpectationCurrency string   `json:"expectationCurrency"`
	BudgetCurrency      string   `json:"budgetCurrency"`

	TalentID      string                    `json:"talentId,omitempty"`
	OpportunityID string                    `json:"opportunityId,omitempty"`
	Talent        *models.TalentRecord      `json:"talent,omitempty"`
	Opportunity   *models.OpportunityRecord `json:"opportunity,omitempty"`
}

func (in *Input) usesRecords() bool {
	return in.TalentID != "" || in.OpportunityID != "" || in.Talent != nil || in.Opportunity != nil
}

type Output struct {
	EvaluationID string `json:"evaluationId"`
	compensation.Summary
}
