// internal/service/report/summary.go

package report

import (
	"sort"

	"trendwatch/internal/domain/trend"
)

const highlightLimit = 20

// Stats carries the headline numbers for one reporting window.
type Stats struct {
	TotalRecords int
	UniqueTopics int
}

// CategoryCount is one bar of the records-per-category view.
type CategoryCount struct {
	Category string
	Count    int
}

// CategorySentiment is one bar of the mean-sentiment-per-category view.
type CategorySentiment struct {
	Category string
	Mean     float64
}

// Summary is the aggregate view rendered into the report.
type Summary struct {
	Stats             Stats
	TopCategory       string
	PositiveCategory  string
	CategoryCounts    []CategoryCount
	CategorySentiment []CategorySentiment
	Highlights        []trend.Record
}

// Summarize computes the aggregate view for a window of records. The
// input is expected ordered by engagement descending, which is what the
// store's recent query returns; highlights keep that order. On an empty
// window both top categories are "n/a" and all counts are zero.
func Summarize(records []trend.Record) Summary {
	summary := Summary{
		TopCategory:      "n/a",
		PositiveCategory: "n/a",
	}

	summary.Stats.TotalRecords = len(records)

	titles := make(map[string]struct{})
	counts := make(map[string]int)
	sentimentSums := make(map[string]float64)
	for _, r := range records {
		titles[r.Title] = struct{}{}
		counts[r.Category]++
		sentimentSums[r.Category] += r.SentimentCompound
	}
	summary.Stats.UniqueTopics = len(titles)

	for category, count := range counts {
		summary.CategoryCounts = append(summary.CategoryCounts, CategoryCount{Category: category, Count: count})
		summary.CategorySentiment = append(summary.CategorySentiment, CategorySentiment{
			Category: category,
			Mean:     sentimentSums[category] / float64(count),
		})
	}

	// Descending, ties broken by name so output is deterministic.
	sort.Slice(summary.CategoryCounts, func(i, j int) bool {
		a, b := summary.CategoryCounts[i], summary.CategoryCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	sort.Slice(summary.CategorySentiment, func(i, j int) bool {
		a, b := summary.CategorySentiment[i], summary.CategorySentiment[j]
		if a.Mean != b.Mean {
			return a.Mean > b.Mean
		}
		return a.Category < b.Category
	})

	if len(summary.CategoryCounts) > 0 {
		summary.TopCategory = summary.CategoryCounts[0].Category
	}
	if len(summary.CategorySentiment) > 0 {
		summary.PositiveCategory = summary.CategorySentiment[0].Category
	}

	if len(records) > highlightLimit {
		summary.Highlights = records[:highlightLimit]
	} else {
		summary.Highlights = records
	}

	return summary
}
