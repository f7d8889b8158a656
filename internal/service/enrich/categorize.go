// internal/service/enrich/categorize.go

package enrich

import (
	"strings"

	"trendwatch/internal/domain/trend"
)

// FallbackCategory is assigned when no taxonomy category matches.
const FallbackCategory = "uncategorized"

// Categorizer assigns exactly one taxonomy category per record by
// scanning categories in taxonomy order and picking the first whose
// keyword list has a substring match. First match wins, not best match.
type Categorizer struct {
	taxonomy trend.Taxonomy
}

// NewCategorizer creates a categorizer over the given taxonomy.
func NewCategorizer(taxonomy trend.Taxonomy) *Categorizer {
	return &Categorizer{taxonomy: taxonomy}
}

// Apply sets the category on every record. Downstream of this stage a
// record's category is never empty.
func (c *Categorizer) Apply(records []trend.Record) []trend.Record {
	for i := range records {
		records[i].Category = c.categorize(records[i].CombinedText())
	}
	return records
}

func (c *Categorizer) categorize(text string) string {
	text = strings.ToLower(text)
	for _, category := range c.taxonomy {
		for _, keyword := range category.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(text, strings.ToLower(keyword)) {
				return category.Name
			}
		}
	}
	return FallbackCategory
}
