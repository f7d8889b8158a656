// internal/adapter/storage/trend_store.go

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trendwatch/internal/domain/trend"
)

// trendRecordModel is the GORM model backing the trend_records table.
type trendRecordModel struct {
	ID                string     `gorm:"primaryKey"`
	Platform          string     `gorm:"index"`
	CreatedAt         *time.Time `gorm:"index;autoCreateTime:false;autoUpdateTime:false"`
	Title             string
	Text              string
	Author            string
	URL               string
	Lang              string
	Engagement        int `gorm:"index"`
	RawMetrics        datatypes.JSONMap
	MarketingRelevant bool
	Category          string
	MatchedKeyword    string
	SentimentCompound float64
	InsertedAt        time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for the model
func (trendRecordModel) TableName() string {
	return "trend_records"
}

// toRecord converts the model to the domain record
func (m *trendRecordModel) toRecord() trend.Record {
	return trend.Record{
		ID:                m.ID,
		Platform:          m.Platform,
		CreatedAt:         m.CreatedAt,
		Title:             m.Title,
		Text:              m.Text,
		Author:            m.Author,
		URL:               m.URL,
		Lang:              m.Lang,
		Engagement:        m.Engagement,
		RawMetrics:        map[string]any(m.RawMetrics),
		MarketingRelevant: m.MarketingRelevant,
		Category:          m.Category,
		MatchedKeyword:    m.MatchedKeyword,
		SentimentCompound: m.SentimentCompound,
		InsertedAt:        m.InsertedAt,
	}
}

// modelFromRecord creates a model from the domain record
func modelFromRecord(r trend.Record) trendRecordModel {
	return trendRecordModel{
		ID:                r.ID,
		Platform:          r.Platform,
		CreatedAt:         r.CreatedAt,
		Title:             r.Title,
		Text:              r.Text,
		Author:            r.Author,
		URL:               r.URL,
		Lang:              r.Lang,
		Engagement:        r.Engagement,
		RawMetrics:        datatypes.JSONMap(r.RawMetrics),
		MarketingRelevant: r.MarketingRelevant,
		Category:          r.Category,
		MatchedKeyword:    r.MatchedKeyword,
		SentimentCompound: r.SentimentCompound,
	}
}

// Every column except the key and the first-seen timestamp is replaced
// on conflict. inserted_at stays deliberately: it records first sight,
// not last write.
var updatableColumns = []string{
	"platform", "created_at", "title", "text", "author", "url", "lang",
	"engagement", "raw_metrics", "marketing_relevant", "category",
	"matched_keyword", "sentiment_compound",
}

// SQLite caps bound parameters per statement (999 on older builds).
// At 15 columns per row this keeps every multi-row INSERT well under it.
const upsertBatchSize = 60

// TrendStore persists normalized records behind an id-keyed upsert.
type TrendStore struct {
	db *gorm.DB
}

// NewTrendStore creates a trend store over an open database handle.
func NewTrendStore(db *gorm.DB) *TrendStore {
	return &TrendStore{db: db}
}

// Open opens (or creates) the sqlite database at path, creating parent
// directories as needed.
func Open(path string) (*TrendStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	return NewTrendStore(db), nil
}

// Init idempotently creates the backing table. Safe to call on every
// start; it only fails on unrecoverable storage errors.
func (s *TrendStore) Init(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&trendRecordModel{}); err != nil {
		return fmt.Errorf("migrating trend_records: %w", err)
	}
	return nil
}

// Upsert writes the batch in a single transaction: insert when the id
// is new, otherwise overwrite every field except id and inserted_at.
// Returns the number of records processed, which equals the attempted
// count including no-op overwrites. An empty batch returns 0 without
// touching storage. A mid-batch error rolls back the whole call.
// Large batches are chunked into multiple INSERT statements inside
// that one transaction.
func (s *TrendStore) Upsert(ctx context.Context, records []trend.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	models := make([]trendRecordModel, 0, len(records))
	for _, r := range records {
		models = append(models, modelFromRecord(r))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{CreateBatchSize: upsertBatchSize}).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns(updatableColumns),
			}).
			Create(&models).Error
	})
	if err != nil {
		return 0, fmt.Errorf("upserting %d records: %w", len(records), err)
	}

	return len(records), nil
}

// QueryRecent returns records created within the trailing window,
// ordered by engagement descending. Records without a timestamp are
// always included: unanchored trend terms count as current.
func (s *TrendStore) QueryRecent(ctx context.Context, days int) ([]trend.Record, error) {
	return s.queryWindow(ctx, days, 0)
}

// TopRecords returns up to limit highest-engagement records in the
// trailing window.
func (s *TrendStore) TopRecords(ctx context.Context, days, limit int) ([]trend.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryWindow(ctx, days, limit)
}

func (s *TrendStore) queryWindow(ctx context.Context, days, limit int) ([]trend.Record, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	q := s.db.WithContext(ctx).
		Where("created_at IS NULL OR created_at >= ?", since).
		Order("engagement DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []trendRecordModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("querying recent records: %w", err)
	}

	records := make([]trend.Record, 0, len(models))
	for i := range models {
		records = append(records, models[i].toRecord())
	}
	return records, nil
}
