// cmd/api/main.go

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trendwatch/internal/adapter/storage"
	"trendwatch/internal/config"
	"trendwatch/internal/domain/trend"
	"trendwatch/internal/server"
	"trendwatch/internal/service/enrich"
	"trendwatch/internal/service/listening"
	"trendwatch/internal/service/report"
)

func main() {
	oneshot := flag.Bool("oneshot", false, "run one ingest and report, then exit")
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Initialize storage
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}
	if err := store.Init(ctx); err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Keyword taxonomy shared by the filter and the categorizer
	taxonomy := config.LoadTaxonomy(cfg.Ingest.KeywordsPath)

	// Source connectors, invoked strictly in sequence per run
	sources := []trend.Source{
		listening.NewXConnector(cfg.Sources.XBearerToken),
		listening.NewRedditConnector(listening.RedditCredentials{
			ClientID:     cfg.Sources.RedditClientID,
			ClientSecret: cfg.Sources.RedditClientSecret,
			UserAgent:    cfg.Sources.RedditUserAgent,
		}),
		listening.NewTrendsConnector(cfg.Sources.Geo),
	}

	ingestor := listening.NewIngestor(
		sources,
		taxonomy,
		enrich.NewScorer(),
		store,
		listening.IngestorConfig{
			MockMode:   cfg.Ingest.MockMode,
			MockCount:  cfg.Ingest.MockCount,
			FetchLimit: cfg.Ingest.FetchLimit,
		},
		logger,
	)

	generator := report.NewGenerator(
		store,
		report.GeneratorConfig{
			ReportsDir: cfg.Report.Dir,
			Geo:        cfg.Sources.Geo,
		},
		logger,
	)

	if *oneshot {
		runOnce(ctx, cfg, ingestor, generator, logger)
		return
	}

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, ingestor, generator, store, logger)

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting HTTP server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("mock_mode", cfg.Ingest.MockMode),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

// runOnce replaces the server with a single pipeline pass: ingest the
// default window, write one HTML report, exit.
func runOnce(
	ctx context.Context,
	cfg config.Config,
	ingestor *listening.Ingestor,
	generator *report.Generator,
	logger *zap.Logger,
) {
	days := cfg.Ingest.DefaultDays

	count, err := ingestor.Ingest(ctx, days)
	if err != nil {
		logger.Fatal("ingestion failed", zap.Error(err))
	}
	logger.Info("ingested records", zap.Int("count", count))

	path, err := generator.Generate(ctx, days, report.FormatHTML)
	if err != nil {
		logger.Fatal("report generation failed", zap.Error(err))
	}
	logger.Info("report written", zap.String("path", path))
}
