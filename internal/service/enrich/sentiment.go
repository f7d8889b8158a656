// internal/service/enrich/sentiment.go

package enrich

import (
	"github.com/jonreiter/govader"

	"trendwatch/internal/domain/trend"
)

// Scorer assigns a compound sentiment score in [-1, 1] using the VADER
// lexicon/rule algorithm. The lexicon ships with the library, so scoring
// is fully offline and deterministic for identical text.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer builds a scorer with the embedded lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Apply scores each record from its combined title and text. When no
// analyzer is available, records keep whatever score they already carry
// (0.0 for fresh connector output) instead of failing the run.
func (s *Scorer) Apply(records []trend.Record) []trend.Record {
	if s == nil || s.analyzer == nil {
		return records
	}

	for i := range records {
		scores := s.analyzer.PolarityScores(records[i].CombinedText())
		records[i].SentimentCompound = scores.Compound
	}
	return records
}
