// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"talent-match-workers/internal/common/camunda"
	"talent-match-workers/internal/common/config"
	"talent-match-workers/internal/common/database"
	"talent-match-workers/internal/common/logger"
	"talent-match-workers/internal/common/observability"
	"talent-match-workers/internal/common/validation"
	"talent-match-workers/internal/store"
	"talent-match-workers/internal/workers/jobs"

	ccr "talent-match-workers/internal/workers/compensation/check-compensation-alignment"
	cms "talent-match-workers/internal/workers/matching/calculate-match-score"
	ro "talent-match-workers/internal/workers/matching/rank-opportunities"
	rt "talent-match-workers/internal/workers/matching/rank-talents"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// Engine objects are built once and fail fast on bad tables.
	engine, err := config.BuildEngine(cfg)
	if err != nil {
		return err
	}
	aligner, err := config.BuildAligner(cfg)
	if err != nil {
		return err
	}
	badges, err := config.BuildBadgeTable(cfg)
	if err != nil {
		return err
	}
	validator, err := validation.NewDefaultValidator()
	if err != nil {
		return err
	}
	zapLog.Info("match engine ready",
		zap.String("engineVersion", engine.Version()),
		zap.String("rateVersion", aligner.Rates().Table().Version()),
	)

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.App.Version,
		TracingEnabled: cfg.Observability.TracingEnabled,
	})
	if err != nil {
		return fmt.Errorf("observability init failed: %w", err)
	}

	ctx := context.Background()

	var cleanup cleanupStack
	defer cleanup.run(log)

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClient(cfg.Camunda)
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		return err
	}
	cleanup.push("zeebe", zeebeClient.Close)
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err = pg.Ping(ctx); err != nil {
			_ = pg.Close()
		}
		return err
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		return err
	}
	cleanup.push("postgres", pg.Close)
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping(ctx)
	}, 15, 2*time.Second, log, "Elasticsearch connection")
	if err != nil {
		return err
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	rdb := database.NewRedis(cfg.Database.Redis)
	cleanup.push("redis", rdb.Close)
	err = retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		return err
	}
	zapLog.Info("Redis connected successfully")

	profiles := store.NewCachedProfiles(
		store.NewPostgresProfiles(pg.DB, store.DefaultBreakerSettings(), log),
		rdb.Client,
		config.GetDuration(cfg.Cache.ProfileTTL),
		log,
	)

	deps := jobs.Deps{
		Engine:    engine,
		Aligner:   aligner,
		Badges:    badges,
		Profiles:  profiles,
		Search:    store.NewOpportunitySearch(esClient.Client, cfg.Database.Elasticsearch.OpportunityIndex),
		Results:   store.NewResultCache(rdb.Client, config.GetDuration(cfg.Cache.ResultTTL), log),
		Validator: validator,
		Obs:       obs,
		Logger:    log,
	}

	// --- Register workers ---
	workers := zeebeClient.StartWorkers(cfg, []camunda.Registration{
		{TaskType: cms.TaskType, Handler: cms.NewHandler(cms.LoadConfig(cfg), deps).Handle},
		{TaskType: ro.TaskType, Handler: ro.NewHandler(ro.LoadConfig(cfg), deps).Handle},
		{TaskType: rt.TaskType, Handler: rt.NewHandler(rt.LoadConfig(cfg), deps).Handle},
		{TaskType: ccr.TaskType, Handler: ccr.NewHandler(ccr.LoadConfig(cfg), deps).Handle},
	}, log)
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := newHTTPServer(cfg.Server.Address, map[string]database.Pinger{
		"postgres":      pg,
		"redis":         rdb,
		"elasticsearch": esClient,
		"zeebe":         zeebeClient,
	}, log)
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Signals: SIGHUP reloads rates, anything else shuts down ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	for sig := range sigCh {
		if sig != syscall.SIGHUP {
			break
		}
		_ = reloadRates(cfg.Compensation, aligner.Rates(), log)
	}
	signal.Stop(sigCh)

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	camunda.StopWorkers(workers)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
	return nil
}
