package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trendwatch/internal/domain/trend"
)

type stubIngestor struct {
	count    int
	err      error
	lastDays int
}

func (s *stubIngestor) Ingest(ctx context.Context, days int) (int, error) {
	s.lastDays = days
	return s.count, s.err
}

type stubGenerator struct {
	path       string
	err        error
	lastFormat string
	calls      int
}

func (s *stubGenerator) Generate(ctx context.Context, days int, format string) (string, error) {
	s.calls++
	s.lastFormat = format
	return s.path, s.err
}

type stubStore struct {
	records   []trend.Record
	err       error
	lastLimit int
}

func (s *stubStore) TopRecords(ctx context.Context, days, limit int) ([]trend.Record, error) {
	s.lastLimit = limit
	if limit > 0 && limit < len(s.records) {
		return s.records[:limit], s.err
	}
	return s.records, s.err
}

func newTestHandler(ingestor *stubIngestor, generator *stubGenerator, store *stubStore) *TrendHandler {
	return NewTrendHandler(ingestor, generator, store, zap.NewNop())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestIngest(t *testing.T) {
	t.Run("default window", func(t *testing.T) {
		ingestor := &stubIngestor{count: 42}
		handler := newTestHandler(ingestor, &stubGenerator{}, &stubStore{})

		rec := httptest.NewRecorder()
		handler.Ingest(rec, httptest.NewRequest(http.MethodPost, "/ingest", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 7, ingestor.lastDays)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(42), body["inserted"])
	})

	t.Run("explicit days", func(t *testing.T) {
		ingestor := &stubIngestor{count: 3}
		handler := newTestHandler(ingestor, &stubGenerator{}, &stubStore{})

		req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"days": 14}`))
		rec := httptest.NewRecorder()
		handler.Ingest(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 14, ingestor.lastDays)
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := newTestHandler(&stubIngestor{}, &stubGenerator{}, &stubStore{})

		req := httptest.NewRequest(http.MethodPost, "/ingest", strings.NewReader(`{"days":`))
		rec := httptest.NewRecorder()
		handler.Ingest(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ingestion failure", func(t *testing.T) {
		ingestor := &stubIngestor{err: errors.New("store unavailable")}
		handler := newTestHandler(ingestor, &stubGenerator{}, &stubStore{})

		rec := httptest.NewRecorder()
		handler.Ingest(rec, httptest.NewRequest(http.MethodPost, "/ingest", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestReport(t *testing.T) {
	now := time.Now().UTC()
	populated := []trend.Record{{ID: "1", Platform: trend.PlatformX, CreatedAt: &now, Engagement: 10}}

	t.Run("invalid format rejected before any work", func(t *testing.T) {
		generator := &stubGenerator{}
		handler := newTestHandler(&stubIngestor{}, generator, &stubStore{records: populated})

		req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{"format": "docx"}`))
		rec := httptest.NewRecorder()
		handler.Report(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, generator.calls)
		body := decodeBody(t, rec)
		assert.Contains(t, body["error"], "Invalid format")
	})

	t.Run("empty window returns not found", func(t *testing.T) {
		generator := &stubGenerator{}
		handler := newTestHandler(&stubIngestor{}, generator, &stubStore{})

		rec := httptest.NewRecorder()
		handler.Report(rec, httptest.NewRequest(http.MethodPost, "/report", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Zero(t, generator.calls)
		body := decodeBody(t, rec)
		assert.Equal(t, "No trends available to generate report", body["error"])
	})

	t.Run("serves generated artifact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weekly_report_2026-09-01.html")
		require.NoError(t, os.WriteFile(path, []byte("<html>report</html>"), 0o644))

		store := &stubStore{records: populated}
		generator := &stubGenerator{path: path}
		handler := newTestHandler(&stubIngestor{}, generator, store)

		req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(`{"days": 7, "format": "HTML"}`))
		rec := httptest.NewRecorder()
		handler.Report(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "html", generator.lastFormat, "format is lowercased before use")
		assert.Equal(t, 1, store.lastLimit, "existence probe asks for a single record")
		assert.Contains(t, rec.Body.String(), "report")
	})

	t.Run("generation failure", func(t *testing.T) {
		generator := &stubGenerator{err: errors.New("render failed")}
		handler := newTestHandler(&stubIngestor{}, generator, &stubStore{records: populated})

		rec := httptest.NewRecorder()
		handler.Report(rec, httptest.NewRequest(http.MethodPost, "/report", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestTrends(t *testing.T) {
	now := time.Now().UTC()
	records := []trend.Record{
		{ID: "1", Platform: trend.PlatformX, Title: "first", Category: "seo", Engagement: 900, SentimentCompound: 0.4, CreatedAt: &now, URL: "https://x.com/1"},
		{ID: "2", Platform: trend.PlatformGTrends, Title: "second", Category: "uncategorized", Engagement: 55},
	}

	t.Run("default limit", func(t *testing.T) {
		store := &stubStore{records: records}
		handler := newTestHandler(&stubIngestor{}, &stubGenerator{}, store)

		rec := httptest.NewRecorder()
		handler.Trends(rec, httptest.NewRequest(http.MethodGet, "/trends", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 20, store.lastLimit)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 2)
		assert.Equal(t, "first", items[0]["title"])
		assert.Equal(t, float64(900), items[0]["engagement"])
		assert.Equal(t, "https://x.com/1", items[0]["url"])
		assert.Nil(t, items[1]["created_at"])
		_, hasURL := items[1]["url"]
		assert.False(t, hasURL, "empty url is omitted")
	})

	t.Run("explicit limit", func(t *testing.T) {
		store := &stubStore{records: records}
		handler := newTestHandler(&stubIngestor{}, &stubGenerator{}, store)

		rec := httptest.NewRecorder()
		handler.Trends(rec, httptest.NewRequest(http.MethodGet, "/trends?limit=1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var items []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		assert.Len(t, items, 1)
	})

	t.Run("invalid limit", func(t *testing.T) {
		handler := newTestHandler(&stubIngestor{}, &stubGenerator{}, &stubStore{})

		for _, limit := range []string{"abc", "0", "-5"} {
			rec := httptest.NewRecorder()
			handler.Trends(rec, httptest.NewRequest(http.MethodGet, "/trends?limit="+limit, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		handler := newTestHandler(&stubIngestor{}, &stubGenerator{}, &stubStore{err: errors.New("db closed")})

		rec := httptest.NewRecorder()
		handler.Trends(rec, httptest.NewRequest(http.MethodGet, "/trends", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestMock(t *testing.T) {
	handler := newTestHandler(&stubIngestor{}, &stubGenerator{}, &stubStore{})

	rec := httptest.NewRecorder()
	handler.Mock(rec, httptest.NewRequest(http.MethodGet, "/mock", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	trends, ok := body["trends"].([]any)
	require.True(t, ok)
	assert.Len(t, trends, 3)
	assert.NotEmpty(t, body["timestamp"])
}
