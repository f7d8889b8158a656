// internal/server/handlers/trend.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"trendwatch/internal/domain/trend"
	"trendwatch/internal/service/report"
)

// Ingestor runs one ingestion pass and reports how many records it
// handed to the store.
type Ingestor interface {
	Ingest(ctx context.Context, days int) (int, error)
}

// ReportGenerator renders the summary report and returns its path.
type ReportGenerator interface {
	Generate(ctx context.Context, days int, format string) (string, error)
}

// Store is the read surface the handlers need.
type Store interface {
	TopRecords(ctx context.Context, days, limit int) ([]trend.Record, error)
}

// TrendHandler handles ingestion and reporting HTTP requests
type TrendHandler struct {
	ingestor  Ingestor
	generator ReportGenerator
	store     Store
	logger    *zap.Logger
}

// NewTrendHandler creates a new trend handler
func NewTrendHandler(ingestor Ingestor, generator ReportGenerator, store Store, logger *zap.Logger) *TrendHandler {
	return &TrendHandler{
		ingestor:  ingestor,
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

type ingestRequest struct {
	Days int `json:"days"`
}

type reportRequest struct {
	Days   int    `json:"days"`
	Format string `json:"format"`
}

// trendItem is the wire shape of one record in /trends responses.
type trendItem struct {
	Platform          string     `json:"platform"`
	Title             string     `json:"title"`
	Category          string     `json:"category"`
	Engagement        int        `json:"engagement"`
	SentimentCompound float64    `json:"sentiment_compound"`
	CreatedAt         *time.Time `json:"created_at"`
	URL               string     `json:"url,omitempty"`
}

// Ingest triggers one synchronous ingestion run
func (h *TrendHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	req := ingestRequest{Days: 7}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}
	if req.Days <= 0 {
		req.Days = 7
	}

	count, err := h.ingestor.Ingest(r.Context(), req.Days)
	if err != nil {
		h.logger.Error("ingestion failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Ingestion failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"inserted": count})
}

// Report renders and serves the summary report for a trailing window.
// Format is validated before any work; an empty window is a distinct
// no-data condition rather than a generic failure.
func (h *TrendHandler) Report(w http.ResponseWriter, r *http.Request) {
	req := reportRequest{Days: 7, Format: report.FormatHTML}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}
	if req.Days <= 0 {
		req.Days = 7
	}

	format := strings.ToLower(req.Format)
	if format != report.FormatHTML && format != report.FormatPDF {
		respondWithError(w, http.StatusBadRequest, "Invalid format. Use 'html' or 'pdf'", report.ErrInvalidFormat)
		return
	}

	records, err := h.store.TopRecords(r.Context(), req.Days, 1)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to query records", err)
		return
	}
	if len(records) == 0 {
		respondWithError(w, http.StatusNotFound, "No trends available to generate report", trend.ErrNoData)
		return
	}

	path, err := h.generator.Generate(r.Context(), req.Days, format)
	if err != nil {
		if errors.Is(err, report.ErrInvalidFormat) {
			respondWithError(w, http.StatusBadRequest, "Invalid format. Use 'html' or 'pdf'", err)
			return
		}
		h.logger.Error("report generation failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to generate report", err)
		return
	}

	http.ServeFile(w, r, path)
}

// Trends returns a bounded list of stored records ordered by
// engagement descending.
func (h *TrendHandler) Trends(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = parsed
	}

	records, err := h.store.TopRecords(r.Context(), 30, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get trends", err)
		return
	}

	items := make([]trendItem, 0, len(records))
	for _, rec := range records {
		items = append(items, trendItem{
			Platform:          rec.Platform,
			Title:             rec.Title,
			Category:          rec.Category,
			Engagement:        rec.Engagement,
			SentimentCompound: rec.SentimentCompound,
			CreatedAt:         rec.CreatedAt,
			URL:               rec.URL,
		})
	}

	respondWithJSON(w, http.StatusOK, items)
}

// Mock returns a canned trend list for quick demos without a store.
func (h *TrendHandler) Mock(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"trends": []map[string]any{
			{"topic": "AI in Marketing", "engagement": 1500, "sentiment": "positive"},
			{"topic": "TikTok Ads", "engagement": 1200, "sentiment": "neutral"},
			{"topic": "SEO automation", "engagement": 900, "sentiment": "positive"},
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
