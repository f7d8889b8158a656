// internal/service/enrich/normalize.go

package enrich

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	"trendwatch/internal/domain/trend"
)

const (
	maxTitleLen = 400
	maxTextLen  = 4000
)

// Normalize coerces a record into the canonical shape: bounded title
// and text, language default, non-negative engagement, non-nil metrics,
// and a stable id derived from content when the source supplied none.
func Normalize(r trend.Record) trend.Record {
	if r.ID == "" {
		r.ID = StableID(r.Platform, r.Title, r.CreatedAt)
	}
	r.Title = truncate(r.Title, maxTitleLen)
	r.Text = truncate(r.Text, maxTextLen)
	if r.Lang == "" {
		r.Lang = "en"
	}
	if r.Engagement < 0 {
		r.Engagement = 0
	}
	if r.RawMetrics == nil {
		r.RawMetrics = map[string]any{}
	}
	return r
}

// NormalizeAll normalizes every record in a batch.
func NormalizeAll(records []trend.Record) []trend.Record {
	for i := range records {
		records[i] = Normalize(records[i])
	}
	return records
}

// StableID hashes (platform, title, created_at) into a hex digest.
// Missing components hash as empty strings, so records with identical
// platform, title and timestamp collapse into one stored row regardless
// of differing text or author. That is the intended dedupe behavior.
func StableID(platform, title string, createdAt *time.Time) string {
	ts := ""
	if createdAt != nil {
		ts = createdAt.UTC().Format(time.RFC3339)
	}
	sum := md5.Sum([]byte(platform + title + ts))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
