// internal/service/report/generator.go

package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"trendwatch/internal/domain/trend"
)

// Report formats accepted by Generate.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// ErrInvalidFormat is returned before any work when the requested
// format is not one of the accepted values.
var ErrInvalidFormat = errors.New("invalid report format, use 'html' or 'pdf'")

// Store is the read surface the generator needs.
type Store interface {
	QueryRecent(ctx context.Context, days int) ([]trend.Record, error)
}

// GeneratorConfig contains configuration for the report generator
type GeneratorConfig struct {
	ReportsDir string
	Geo        string
}

// Generator renders the periodic summary report from stored records.
// It only reads from the store and runs independently of ingestion.
type Generator struct {
	store  Store
	config GeneratorConfig
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(store Store, config GeneratorConfig, logger *zap.Logger) *Generator {
	return &Generator{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Generate renders the report for the trailing window and returns the
// artifact path. An empty window still succeeds, producing zeroed stats
// and placeholder charts. Format "pdf" additionally attempts a
// wkhtmltopdf conversion; when the converter is unavailable the HTML
// path is returned instead.
func (g *Generator) Generate(ctx context.Context, days int, format string) (string, error) {
	if format != FormatHTML && format != FormatPDF {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	records, err := g.store.QueryRecent(ctx, days)
	if err != nil {
		return "", fmt.Errorf("querying report window: %w", err)
	}
	summary := Summarize(records)

	assetsDir := filepath.Join(g.config.ReportsDir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating reports directory: %w", err)
	}

	countsPNG := filepath.Join(assetsDir, "category_counts.png")
	if err := renderCategoryCounts(summary.CategoryCounts, countsPNG); err != nil {
		return "", err
	}
	sentPNG := filepath.Join(assetsDir, "category_sentiment.png")
	if err := renderCategorySentiment(summary.CategorySentiment, sentPNG); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	htmlPath := filepath.Join(
		g.config.ReportsDir,
		fmt.Sprintf("weekly_report_%s.html", now.Format("2006-01-02")),
	)

	data := reportData{
		PeriodLabel: fmt.Sprintf("Last %d days", days),
		Geo:         g.config.Geo,
		GeneratedAt: now.Format("2006-01-02 15:04 UTC"),
		Summary:     summary,
		CountsImage: "assets/category_counts.png",
		SentImage:   "assets/category_sentiment.png",
	}
	if err := writeHTML(htmlPath, data); err != nil {
		return "", err
	}

	if format == FormatPDF {
		pdfPath, err := convertToPDF(htmlPath)
		if err != nil {
			g.logger.Warn("pdf conversion skipped", zap.Error(err))
			return htmlPath, nil
		}
		g.logger.Info("report generated", zap.String("path", pdfPath))
		return pdfPath, nil
	}

	g.logger.Info("report generated",
		zap.String("path", htmlPath),
		zap.Int("records", summary.Stats.TotalRecords),
	)
	return htmlPath, nil
}
