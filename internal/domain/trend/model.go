// internal/domain/trend/model.go

package trend

import (
	"time"
)

// Platform tags carried by every record.
const (
	PlatformX       = "x"
	PlatformReddit  = "reddit"
	PlatformGTrends = "gtrends"
)

// Record is the canonical unit flowing through the pipeline. A record
// is created in memory by a connector (or the mock generator), enriched
// in place, and only becomes durable once handed to the store's upsert.
type Record struct {
	ID                string
	Platform          string
	CreatedAt         *time.Time // nil when the source has no timestamp (trend terms)
	Title             string
	Text              string
	Author            string
	URL               string
	Lang              string
	Engagement        int
	RawMetrics        map[string]any
	MarketingRelevant bool
	Category          string
	MatchedKeyword    string
	SentimentCompound float64
	InsertedAt        time.Time // assigned by the store on first insert
}

// CombinedText is the span the filter, scorer and categorizer operate on.
func (r Record) CombinedText() string {
	return r.Title + " " + r.Text
}

// Category pairs a taxonomy label with its keyword list.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is the ordered category -> keywords mapping shared by the
// filter and the categorizer. Order is significant: categorization is
// first match wins, and the slice preserves the document order of the
// keywords file.
type Taxonomy []Category

// FlatKeywords returns the deduplicated union of keywords across all
// categories.
func (t Taxonomy) FlatKeywords() []string {
	seen := make(map[string]struct{})
	var flat []string
	for _, c := range t {
		for _, k := range c.Keywords {
			if k == "" {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			flat = append(flat, k)
		}
	}
	return flat
}
