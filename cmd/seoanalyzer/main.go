// Package main wires together the analysis service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pubsubv2 "cloud.google.com/go/pubsub/v2"
	gcstorage "cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/beydemirfurkan/seo-analyze/internal/analyzer"
	"github.com/beydemirfurkan/seo-analyze/internal/api"
	"github.com/beydemirfurkan/seo-analyze/internal/clock/system"
	"github.com/beydemirfurkan/seo-analyze/internal/config"
	"github.com/beydemirfurkan/seo-analyze/internal/dispatcher"
	"github.com/beydemirfurkan/seo-analyze/internal/extract"
	"github.com/beydemirfurkan/seo-analyze/internal/id/uuid"
	"github.com/beydemirfurkan/seo-analyze/internal/insight/gemini"
	"github.com/beydemirfurkan/seo-analyze/internal/logging"
	memorypublisher "github.com/beydemirfurkan/seo-analyze/internal/publisher/memory"
	pubsubpublisher "github.com/beydemirfurkan/seo-analyze/internal/publisher/pubsub"
	queueMemory "github.com/beydemirfurkan/seo-analyze/internal/queue/memory"
	"github.com/beydemirfurkan/seo-analyze/internal/seo"
	"github.com/beydemirfurkan/seo-analyze/internal/storage/gcs"
	"github.com/beydemirfurkan/seo-analyze/internal/storage/local"
	memoryStorage "github.com/beydemirfurkan/seo-analyze/internal/storage/memory"
	"github.com/beydemirfurkan/seo-analyze/internal/storage/postgres"
	"github.com/beydemirfurkan/seo-analyze/internal/telemetry"
	"github.com/beydemirfurkan/seo-analyze/internal/worker"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, _, err := telemetry.Init(ctx, "seo-analyze", cfg.PubSub.ProjectID); err != nil {
		logger.Warn("telemetry init failed", zap.Error(err))
	}

	clock := system.New()
	idGen := uuid.New()

	jobStore, closeJobStore, err := buildJobStore(ctx, cfg, clock)
	if err != nil {
		logger.Fatal("job store init failed", zap.Error(err))
	}
	defer closeJobStore()

	blobStore, err := buildBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal("blob store init failed", zap.Error(err))
	}

	publisher, err := buildPublisher(ctx, cfg)
	if err != nil {
		logger.Fatal("publisher init failed", zap.Error(err))
	}

	var insight seo.InsightGenerator
	if cfg.Enrichment.Enabled {
		gen, err := gemini.New(ctx, cfg.Enrichment.APIKey, cfg.Enrichment.Model)
		if err != nil {
			logger.Warn("insight generator init failed, enrichment disabled", zap.Error(err))
		} else {
			insight = gen
		}
	}

	fetcher := extract.NewFetcher(extract.FetcherConfig{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	}, logger.Named("fetcher"))
	extractor := extract.New(fetcher, logger.Named("extractor"))
	pipeline := analyzer.New(cfg, insight, clock, logger.Named("analyzer"))

	queue := queueMemory.NewQueue(cfg.Analyzer.QueueDepth)
	workerCfg := worker.Config{
		BlobPrefix: cfg.Storage.Prefix,
		Topic:      cfg.PubSub.TopicName,
	}
	var workers []*worker.Worker
	for i := 0; i < cfg.Analyzer.Concurrency; i++ {
		workers = append(workers, worker.New(
			queue,
			jobStore,
			blobStore,
			publisher,
			extractor,
			pipeline,
			clock,
			workerCfg,
			logger.Named("worker").With(zap.Int("index", i)),
		))
	}
	dispatch := dispatcher.New(queue, workers)

	apiServer := api.NewServer(jobStore, dispatch, extractor, pipeline, idGen, clock, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("dispatcher started", zap.Int("workers", cfg.Analyzer.Concurrency))
		dispatch.Run(ctx)
	}()

	go runRetentionLoop(ctx, jobStore, clock, cfg.Retention(), logger.Named("retention"))

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	queue.Close()
	logger.Info("shutdown complete")
}

func buildJobStore(ctx context.Context, cfg config.Config, clock seo.Clock) (seo.JobStore, func(), error) {
	switch cfg.DB.Provider {
	case "postgres":
		store, err := postgres.NewJobStore(ctx, postgres.JobStoreConfig{DSN: cfg.DB.DSN}, clock)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "memory", "":
		return memoryStorage.NewJobStore(clock), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown db provider %q", cfg.DB.Provider)
	}
}

func buildBlobStore(ctx context.Context, cfg config.Config) (seo.BlobStore, error) {
	switch cfg.Storage.Provider {
	case "gcs":
		client, err := gcstorage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create gcs client: %w", err)
		}
		return gcs.New(client, gcs.Config{Bucket: cfg.Storage.GCSBucket})
	case "local":
		return local.New(local.Config{BaseDir: cfg.Storage.BaseDir})
	case "memory", "":
		return memoryStorage.NewBlobStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}

func buildPublisher(ctx context.Context, cfg config.Config) (seo.Publisher, error) {
	if cfg.PubSub.ProjectID == "" || cfg.PubSub.TopicName == "" {
		return memorypublisher.New(), nil
	}
	client, err := pubsubv2.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}
	return pubsubpublisher.New(client.Publisher(cfg.PubSub.TopicName)), nil
}

// runRetentionLoop evicts terminal jobs older than the retention window.
func runRetentionLoop(ctx context.Context, store seo.JobStore, clock seo.Clock, retention time.Duration, logger *zap.Logger) {
	if retention <= 0 {
		return
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.DeleteExpired(ctx, clock.Now().Add(-retention))
			if err != nil {
				logger.Error("retention sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("expired analyses evicted", zap.Int("removed", removed))
			}
		}
	}
}
