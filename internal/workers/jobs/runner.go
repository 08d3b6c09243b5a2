// Package jobs holds the job lifecycle shared by every worker: decode and
// validate variables, execute under a deadline and span, then complete the
// job or hand the error to the BPMN error handler.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/metrics"
	"talent-match-workers/internal/common/observability"
	"talent-match-workers/internal/common/validation"
)

const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// ExecuteFunc runs one job. raw is the job's variables document, already
// validated against the task's input schema.
type ExecuteFunc func(ctx context.Context, raw string) (interface{}, error)

type Runner struct {
	taskType     string
	timeout      time.Duration
	validator    *validation.Validator
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewRunner(taskType string, timeout time.Duration, v *validation.Validator, obs *observability.Observability, log logger.Logger) *Runner {
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Runner{
		taskType:     taskType,
		timeout:      timeout,
		validator:    v,
		obs:          obs,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (r *Runner) Run(client worker.JobClient, job entities.Job, execute ExecuteFunc) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.taskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	ctx, span := r.obs.StartSpan(ctx, r.taskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)
	defer span.End()

	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	output, err := r.validateAndExecute(ctx, job.Variables, execute)
	if err != nil {
		stdErr := errors.AsStandardError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, string(stdErr.Code)).Inc()
		r.record(ctx, start, statusFailed)
		r.errorHandler.HandleJobError(ctx, client, job, stdErr)
		return
	}

	r.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	r.record(ctx, start, statusCompleted)
}

func (r *Runner) validateAndExecute(ctx context.Context, raw string, execute ExecuteFunc) (interface{}, error) {
	if r.validator != nil {
		if _, err := r.validator.ValidateJSON(r.taskType, raw); err != nil {
			return nil, err
		}
	}
	return execute(ctx, raw)
}

func (r *Runner) record(ctx context.Context, start time.Time, status string) {
	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	r.obs.RecordJobProcessed(ctx, r.taskType, status)
	r.obs.RecordJobDuration(ctx, r.taskType, elapsed, status)
}

func (r *Runner) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	r.logger.Info("job completed", map[string]interface{}{"jobKey": job.Key})
}

// Decode unmarshals raw job variables into dst. Decoding failures are input
// errors, never retried.
func Decode(raw string, dst interface{}) error {
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("decode variables: %v", err))
	}
	return nil
}
