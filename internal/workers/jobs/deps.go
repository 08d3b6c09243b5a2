package jobs

import (
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/observability"
	"talent-match-workers/internal/common/validation"
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/store"
)

// Deps are the collaborators shared by every worker. Engine objects are built
// once at startup and never mutated afterwards. Results and Search may be nil.
type Deps struct {
	Engine    *matching.Engine
	Aligner   *compensation.Aligner
	Badges    *compensation.BadgeTable
	Profiles  store.ProfileStore
	Search    store.OpportunitySearcher
	Results   *store.ResultCache
	Validator *validation.Validator
	Obs       *observability.Observability
	Logger    logger.Logger
}
