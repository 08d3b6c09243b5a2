// internal/common/camunda/worker.go
package camunda

import (
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/logger"
)

// Registration binds a task type to its handler.
type Registration struct {
	TaskType string
	Handler  worker.JobHandler
}

// StartWorkers opens one job worker per enabled registration. Disabled task
// types are logged and skipped.
func (c *Client) StartWorkers(cfg *config.Config, regs []Registration, log logger.Logger) []worker.JobWorker {
	workers := make([]worker.JobWorker, 0, len(regs))
	for _, r := range regs {
		wcfg := config.GetWorkerConfig(cfg, r.TaskType)
		if !wcfg.Enabled {
			log.Info("worker disabled", map[string]interface{}{"taskType": r.TaskType})
			continue
		}

		w := c.NewJobWorker().
			JobType(r.TaskType).
			Handler(r.Handler).
			Name(cfg.App.Name).
			MaxJobsActive(wcfg.MaxJobsActive).
			Timeout(config.GetDuration(wcfg.Timeout)).
			Open()
		workers = append(workers, w)

		log.Info("worker started", map[string]interface{}{
			"taskType":      r.TaskType,
			"maxJobsActive": wcfg.MaxJobsActive,
			"timeout_ms":    wcfg.Timeout,
		})
	}
	return workers
}

// StopWorkers closes every worker and waits for in-flight jobs.
func StopWorkers(workers []worker.JobWorker) {
	for _, w := range workers {
		w.Close()
	}
	for _, w := range workers {
		w.AwaitClose()
	}
}
