// Package store loads talent and opportunity records for the workers. The
// match engine never calls it directly.
package store

import (
	"context"

	"talent-match-workers/internal/models"
)

// ProfileStore loads records by id. Implementations return a
// PROFILE_NOT_FOUND StandardError for unknown ids and PROFILE_FETCH_FAILED
// for everything else.
type ProfileStore interface {
	GetTalent(ctx context.Context, id string) (*models.TalentRecord, error)
	GetOpportunity(ctx context.Context, id string) (*models.OpportunityRecord, error)
	GetTalents(ctx context.Context, ids []string) ([]models.TalentRecord, error)
}

// SearchQuery narrows the opportunities considered for one talent.
type SearchQuery struct {
	Divisions  []string `json:"divisions,omitempty"`
	Country    string   `json:"country,omitempty"`
	RoleLevels []string `json:"roleLevels,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// OpportunitySearcher retrieves candidate opportunities.
type OpportunitySearcher interface {
	Find(ctx context.Context, q SearchQuery) ([]models.OpportunityRecord, error)
}
