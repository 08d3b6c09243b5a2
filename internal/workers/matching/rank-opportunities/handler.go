// internal/workers/matching/rank-opportunities/handler.go
package rankopportunities

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
	"talent-match-workers/internal/store"
	"talent-match-workers/internal/workers/jobs"
)

const (
	TaskType = "rank-opportunities"
)

type Handler struct {
	config   *Config
	engine   *matching.Engine
	profiles store.ProfileStore
	search   store.OpportunitySearcher
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, deps jobs.Deps) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		engine:   deps.Engine,
		profiles: deps.Profiles,
		search:   deps.Search,
		runner:   jobs.NewRunner(TaskType, config.Timeout, deps.Validator, deps.Obs, log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, raw string) (interface{}, error) {
		var input Input
		if err := jobs.Decode(raw, &input); err != nil {
			return nil, err
		}
		return h.execute(ctx, &input)
	})
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	talent, err := h.loadTalent(ctx, input)
	if err != nil {
		return nil, err
	}

	candidates, err := h.candidates(ctx, talent, input)
	if err != nil {
		return nil, err
	}
	if h.config.MaxBatchSize > 0 && len(candidates) > h.config.MaxBatchSize {
		return nil, errors.NewInvalidInputError(fmt.Sprintf(
			"%d opportunities exceeds the batch limit of %d", len(candidates), h.config.MaxBatchSize))
	}

	ranked, err := h.engine.RankOpportunities(ctx, *talent, candidates, h.config.Parallelism)
	if err != nil {
		return nil, err
	}

	version := h.engine.Version()
	for _, r := range ranked {
		metrics.ObserveMatch(version, "engine", r.Result.OverallScore)
	}

	maxItems := input.MaxItems
	if maxItems <= 0 {
		maxItems = h.config.MaxItems
	}
	if len(ranked) > maxItems {
		ranked = ranked[:maxItems]
	}

	items := make([]RankedItem, len(ranked))
	for i, r := range ranked {
		items[i] = RankedItem{
			Rank:          i + 1,
			OpportunityID: r.OpportunityID,
			MatchScore:    r.Result.OverallScore,
			Breakdown:     r.Result.Breakdown,
		}
	}

	h.logger.Info("opportunities ranked", map[string]interface{}{
		"talentId":   talent.ID,
		"candidates": len(candidates),
		"returned":   len(items),
	})

	return &Output{
		EvaluationID:        uuid.New().String(),
		TalentID:            talent.ID,
		RankedOpportunities: items,
		TotalCandidates:     len(candidates),
		EngineVersion:       version,
	}, nil
}

func (h *Handler) loadTalent(ctx context.Context, input *Input) (*models.TalentRecord, error) {
	if input.Talent != nil {
		if input.Talent.ID == "" {
			input.Talent.ID = input.TalentID
		}
		return input.Talent, nil
	}
	return h.profiles.GetTalent(ctx, input.TalentID)
}

// candidates returns the inline list, or searches. A search naming no
// division is narrowed to the talent's own divisions.
func (h *Handler) candidates(ctx context.Context, talent *models.TalentRecord, input *Input) ([]models.OpportunityRecord, error) {
	if len(input.Opportunities) > 0 || input.Search == nil {
		return input.Opportunities, nil
	}
	if h.search == nil {
		return nil, errors.NewInvalidInputError("opportunity search is not configured; pass opportunities inline")
	}

	query := *input.Search
	if len(query.Divisions) == 0 {
		query.Divisions = talent.Divisions
	}
	if query.Limit <= 0 || (h.config.MaxBatchSize > 0 && query.Limit > h.config.MaxBatchSize) {
		query.Limit = h.config.MaxBatchSize
	}
	return h.search.Find(ctx, query)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
