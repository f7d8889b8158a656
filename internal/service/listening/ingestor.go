// internal/service/listening/ingestor.go

package listening

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"trendwatch/internal/domain/trend"
	"trendwatch/internal/service/enrich"
)

// Store is the persistence surface the ingestor needs.
type Store interface {
	Upsert(ctx context.Context, records []trend.Record) (int, error)
}

// IngestorConfig contains configuration for the ingestor
type IngestorConfig struct {
	MockMode   bool
	MockCount  int
	FetchLimit int
}

// Ingestor runs one synchronous extraction pass across all configured
// sources, enriches the results and persists them. Sources run strictly
// in sequence; a skipped source degrades the batch, never fails it.
type Ingestor struct {
	sources  []trend.Source
	taxonomy trend.Taxonomy
	scorer   *enrich.Scorer
	store    Store
	mock     *MockGenerator
	config   IngestorConfig
	logger   *zap.Logger
}

// NewIngestor creates a new ingestor
func NewIngestor(
	sources []trend.Source,
	taxonomy trend.Taxonomy,
	scorer *enrich.Scorer,
	store Store,
	config IngestorConfig,
	logger *zap.Logger,
) *Ingestor {
	if config.MockCount <= 0 {
		config.MockCount = 80
	}
	if config.FetchLimit <= 0 {
		config.FetchLimit = 200
	}
	return &Ingestor{
		sources:  sources,
		taxonomy: taxonomy,
		scorer:   scorer,
		store:    store,
		mock:     NewMockGenerator(),
		config:   config,
		logger:   logger,
	}
}

// Ingest runs the full pipeline for the trailing window and returns the
// number of records handed to the store. Re-ingesting is idempotent:
// records with known ids overwrite their stored rows.
func (in *Ingestor) Ingest(ctx context.Context, days int) (int, error) {
	records := in.collect(ctx, days)

	count, err := in.store.Upsert(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("persisting batch: %w", err)
	}

	in.logger.Info("ingestion complete",
		zap.Int("records", count),
		zap.Int("days", days),
		zap.Bool("mock", in.config.MockMode),
	)
	return count, nil
}

// collect gathers raw records and walks them through
// filter -> sentiment -> categorize -> normalize. Mock mode bypasses
// the connectors and the enrichment stages: the generator emits records
// that are already labeled.
func (in *Ingestor) collect(ctx context.Context, days int) []trend.Record {
	if in.config.MockMode {
		return in.mock.Generate(in.config.MockCount)
	}

	keywords := in.taxonomy.FlatKeywords()

	var records []trend.Record
	for _, source := range in.sources {
		result := source.Fetch(ctx, keywords, days, in.config.FetchLimit)
		switch result.Status {
		case trend.FetchSkipped:
			in.logger.Warn("source skipped",
				zap.String("platform", result.Platform),
				zap.String("reason", result.Reason),
			)
		case trend.FetchEmpty:
			in.logger.Info("source returned no records", zap.String("platform", result.Platform))
		default:
			in.logger.Info("source fetched",
				zap.String("platform", result.Platform),
				zap.Int("records", len(result.Records)),
			)
			records = append(records, result.Records...)
		}
	}

	records = enrich.NewFilter(keywords).Apply(records)
	records = in.scorer.Apply(records)
	records = enrich.NewCategorizer(in.taxonomy).Apply(records)
	return enrich.NormalizeAll(records)
}
