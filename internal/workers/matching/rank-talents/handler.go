// internal/workers/matching/rank-talents/handler.go
package ranktalents

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
	TaskType = "rank-talents"
)

type Handler struct {
	config   *Config
	engine   *matching.Engine
	profiles store.ProfileStore
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, deps jobs.Deps) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		engine:   deps.Engine,
		profiles: deps.Profiles,
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
	if n := max(len(input.Talents), len(input.TalentIDs)); h.config.MaxBatchSize > 0 && n > h.config.MaxBatchSize {
		return nil, errors.NewInvalidInputError(fmt.Sprintf(
			"%d talents exceeds the batch limit of %d", n, h.config.MaxBatchSize))
	}

	opportunity, err := h.loadOpportunity(ctx, input)
	if err != nil {
		return nil, err
	}

	talents := input.Talents
	if len(talents) == 0 && len(input.TalentIDs) > 0 {
		if talents, err = h.profiles.GetTalents(ctx, dedupe(input.TalentIDs)); err != nil {
			return nil, err
		}
	}

	ranked, err := h.engine.RankTalents(ctx, *opportunity, talents, h.config.Parallelism)
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
			Rank:       i + 1,
			TalentID:   r.TalentID,
			MatchScore: r.Result.OverallScore,
			Breakdown:  r.Result.Breakdown,
		}
	}

	h.logger.Info("talents ranked", map[string]interface{}{
		"opportunityId": opportunity.ID,
		"candidates":    len(talents),
		"returned":      len(items),
	})

	return &Output{
		EvaluationID:    uuid.New().String(),
		OpportunityID:   opportunity.ID,
		RankedTalents:   items,
		TotalCandidates: len(talents),
		EngineVersion:   version,
	}, nil
}

func (h *Handler) loadOpportunity(ctx context.Context, input *Input) (*models.OpportunityRecord, error) {
	if input.Opportunity != nil {
		if input.Opportunity.ID == "" {
			input.Opportunity.ID = input.OpportunityID
		}
		return input.Opportunity, nil
	}
	return h.profiles.GetOpportunity(ctx, input.OpportunityID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
