// internal/workers/compensation/check-compensation-alignment/handler.go
package checkcompensationalignment

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/common/optional"
	"talent-match-workers/internal/compensation"
	"talent-match-workers/internal/store"
	"talent-match-workers/internal/workers/jobs"
)

const (
	TaskType = "check-compensation-alignment"
)

type Handler struct {
	config   *Config
	aligner  *compensation.Aligner
	badges   *compensation.BadgeTable
	profiles store.ProfileStore
	runner   *jobs.Runner
	logger   logger.Logger
}

func NewHandler(config *Config, deps jobs.Deps) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		aligner:  deps.Aligner,
		badges:   deps.Badges,
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
	var result compensation.CompensationAlignmentResult
	if input.usesRecords() {
		r, err := h.alignRecords(ctx, input)
		if err != nil {
			return nil, err
		}
		result = r
	} else {
		result = h.aligner.CalculateCompensationAlignment(
			optional.FromPtr(input.Expectation),
			optional.FromPtr(input.MinBudget),
			optional.FromPtr(input.MaxBudget),
			input.ExpectationCurrency,
			input.BudgetCurrency,
		)
	}

	metrics.CompensationAlignments.WithLabelValues(string(result.Alignment)).Inc()
	h.logger.Debug("compensation aligned", map[string]interface{}{
		"alignment":   string(result.Alignment),
		"rateVersion": result.RateVersion,
	})

	return &Output{
		EvaluationID: uuid.New().String(),
		Summary:      h.badges.Summarize(result),
	}, nil
}

func (h *Handler) alignRecords(ctx context.Context, input *Input) (compensation.CompensationAlignmentResult, error) {
	talent, opportunity := input.Talent, input.Opportunity
	if (talent == nil && input.TalentID == "") || (opportunity == nil && input.OpportunityID == "") {
		return compensation.CompensationAlignmentResult{}, errors.NewInvalidInputError(
			"record alignment needs both a talent and an opportunity")
	}

	var err error
	if talent == nil {
		if talent, err = h.profiles.GetTalent(ctx, input.TalentID); err != nil {
			return compensation.CompensationAlignmentResult{}, err
		}
	}
	if opportunity == nil {
		if opportunity, err = h.profiles.GetOpportunity(ctx, input.OpportunityID); err != nil {
			return compensation.CompensationAlignmentResult{}, err
		}
	}
	return h.aligner.AlignRecords(*talent, *opportunity), nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
