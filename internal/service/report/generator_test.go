package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trendwatch/internal/domain/trend"
)

// stubStore returns a fixed window.
type stubStore struct {
	records []trend.Record
	err     error
}

func (s stubStore) QueryRecent(ctx context.Context, days int) ([]trend.Record, error) {
	return s.records, s.err
}

func newTestGenerator(t *testing.T, records []trend.Record) (*Generator, string) {
	dir := t.TempDir()
	generator := NewGenerator(
		stubStore{records: records},
		GeneratorConfig{ReportsDir: dir, Geo: "IN"},
		zap.NewNop(),
	)
	return generator, dir
}

func TestGenerator_InvalidFormatRejectedBeforeWork(t *testing.T) {
	generator, dir := newTestGenerator(t, nil)

	_, err := generator.Generate(context.Background(), 7, "docx")
	require.ErrorIs(t, err, ErrInvalidFormat)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no artifacts should be written for an invalid format")
}

func TestGenerator_EmptyStoreProducesPlaceholderReport(t *testing.T) {
	generator, dir := newTestGenerator(t, nil)

	path, err := generator.Generate(context.Background(), 7, FormatHTML)
	require.NoError(t, err)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "n/a")
	assert.Contains(t, string(html), "No records in this period")

	for _, name := range []string{"category_counts.png", "category_sentiment.png"} {
		info, err := os.Stat(filepath.Join(dir, "assets", name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestGenerator_PopulatedReport(t *testing.T) {
	now := time.Now().UTC()
	records := []trend.Record{
		{
			ID: "1", Platform: trend.PlatformX, CreatedAt: &now,
			Title: "shopify checkout wins", Category: "ecommerce",
			Engagement: 900, SentimentCompound: 0.7, URL: "https://example.com/1",
		},
		{
			ID: "2", Platform: trend.PlatformReddit, CreatedAt: &now,
			Title: "seo volatility", Category: "seo",
			Engagement: 400, SentimentCompound: -0.1,
		},
		{
			ID: "3", Platform: trend.PlatformGTrends,
			Title: "marketing", Category: "uncategorized",
			Engagement: 55, SentimentCompound: 0,
		},
	}

	generator, _ := newTestGenerator(t, records)

	path, err := generator.Generate(context.Background(), 7, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(path), "weekly_report_")

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(html)
	assert.Contains(t, body, "Last 7 days")
	assert.Contains(t, body, "shopify checkout wins")
	assert.Contains(t, body, "ecommerce")
	assert.Contains(t, body, "category_counts.png")
	assert.Contains(t, body, "category_sentiment.png")
}

func TestGenerator_PDFFallsBackToHTMLWithoutConverter(t *testing.T) {
	// Point the converter lookup at an empty directory so the binary
	// is never found, regardless of the host.
	t.Setenv("WKHTMLTOPDF_PATH", t.TempDir())

	now := time.Now().UTC()
	generator, _ := newTestGenerator(t, []trend.Record{
		{ID: "1", Platform: trend.PlatformX, CreatedAt: &now, Title: "t", Category: "seo", Engagement: 1},
	})

	path, err := generator.Generate(context.Background(), 7, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, ".html", filepath.Ext(path))
}
