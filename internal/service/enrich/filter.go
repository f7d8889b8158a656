// internal/service/enrich/filter.go

package enrich

import (
	"regexp"
	"strings"

	"trendwatch/internal/domain/trend"
)

// Filter keeps records whose combined title and text contain at least
// one whole-word keyword match, and tags the keyword that matched.
type Filter struct {
	rx *regexp.Regexp
}

// NewFilter builds a case-insensitive whole-word matcher over the
// keyword list. An empty list produces a pass-through filter.
func NewFilter(keywords []string) *Filter {
	escaped := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(k))
	}
	if len(escaped) == 0 {
		return &Filter{}
	}

	rx := regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
	return &Filter{rx: rx}
}

// Apply returns the records that match, each marked relevant and tagged
// with the lower-cased first match. Non-matching records are dropped.
// With no keywords configured every record passes through unchanged.
func (f *Filter) Apply(records []trend.Record) []trend.Record {
	if f.rx == nil {
		return records
	}

	out := make([]trend.Record, 0, len(records))
	for _, r := range records {
		match := f.rx.FindString(r.CombinedText())
		if match == "" {
			continue
		}
		r.MarketingRelevant = true
		r.MatchedKeyword = strings.ToLower(match)
		out = append(out, r)
	}
	return out
}
