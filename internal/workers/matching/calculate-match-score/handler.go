// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/matching"
	"talent-match-workers/internal/models"
	"talent-match-workers/internal/store"
	"talent-match-workers/internal/workers/jobs"
)

const (
	TaskType = "calculate-match-score"
)

type Handler struct {
	config   *Config
	engine   *matching.Engine
	aligner  *compensation.Aligner
	badges   *compensation.BadgeTable
	profiles store.ProfileStore
	results  *store.ResultCache
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, deps jobs.Deps) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		engine:   deps.Engine,
		aligner:  deps.Aligner,
		badges:   deps.Badges,
		profiles: deps.Profiles,
		results:  deps.Results,
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
	talent, opportunity, err := h.resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	result, cached := h.score(ctx, *talent, *opportunity)
	output := &Output{
		EvaluationID:  uuid.New().String(),
		TalentID:      talent.ID,
		OpportunityID: opportunity.ID,
		MatchScore:    result.OverallScore,
		Breakdown:     result.Breakdown,
		EngineVersion: h.engine.Version(),
		Cached:        cached,
	}

	if input.IncludeCompensation {
		alignment := h.aligner.AlignRecords(*talent, *opportunity)
		metrics.CompensationAlignments.WithLabelValues(string(alignment.Alignment)).Inc()
		summary := h.badges.Summarize(alignment)
		output.Compensation = &summary
	}

	h.logger.Info("match scored", map[string]interface{}{
		"talentId":      output.TalentID,
		"opportunityId": output.OpportunityID,
		"matchScore":    output.MatchScore,
		"cached":        cached,
	})
	return output, nil
}

// resolve loads whichever side was not given inline. Both loads run
// concurrently.
func (h *Handler) resolve(ctx context.Context, input *Input) (*models.TalentRecord, *models.OpportunityRecord, error) {
	talent, opportunity := input.Talent, input.Opportunity
	g, gctx := errgroup.WithContext(ctx)
	if talent == nil {
		g.Go(func() error {
			var err error
			talent, err = h.profiles.GetTalent(gctx, input.TalentID)
			return err
		})
	} else if talent.ID == "" {
		talent.ID = input.TalentID
	}
	if opportunity == nil {
		g.Go(func() error {
			var err error
			opportunity, err = h.profiles.GetOpportunity(gctx, input.OpportunityID)
			return err
		})
	} else if opportunity.ID == "" {
		opportunity.ID = input.OpportunityID
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return talent, opportunity, nil
}

func (h *Handler) score(ctx context.Context, talent models.TalentRecord, opportunity models.OpportunityRecord) (matching.MatchResult, bool) {
	version := h.engine.Version()
	key, cacheable := store.ResultKey(version, talent, opportunity)
	if cacheable && h.results != nil {
		if hit, ok := h.results.Get(ctx, key); ok {
			metrics.ObserveMatch(version, "cache", hit.OverallScore)
			return *hit, true
		}
	}

	result := h.engine.CalculateMatch(talent, opportunity)
	metrics.ObserveMatch(version, "engine", result.OverallScore)
	if cacheable && h.results != nil {
		h.results.Put(ctx, key, result)
	}
	return result, false
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
