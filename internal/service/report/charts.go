// internal/service/report/charts.go

package report

import (
	"fmt"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
)

// renderCategoryCounts writes the records-per-category bar chart. An
// empty dataset renders the labeled placeholder instead.
func renderCategoryCounts(counts []CategoryCount, path string) error {
	if len(counts) == 0 {
		return renderPlaceholder("Records per Category", path)
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, chart.Value{Label: c.Category, Value: float64(c.Count)})
	}
	return renderBars("Records per Category", bars, nil, path)
}

// renderCategorySentiment writes the mean-sentiment-per-category bar
// chart, with the axis pinned to the compound score range.
func renderCategorySentiment(sentiment []CategorySentiment, path string) error {
	if len(sentiment) == 0 {
		return renderPlaceholder("Average Sentiment by Category", path)
	}

	bars := make([]chart.Value, 0, len(sentiment))
	for _, s := range sentiment {
		bars = append(bars, chart.Value{Label: s.Category, Value: s.Mean})
	}
	return renderBars("Average Sentiment by Category", bars, &chart.ContinuousRange{Min: -1, Max: 1}, path)
}

// renderPlaceholder writes a clearly labeled empty chart so the report
// template never references a missing image.
func renderPlaceholder(title, path string) error {
	bars := []chart.Value{{Label: "no data", Value: 0}}
	return renderBars(title+" (no data)", bars, &chart.ContinuousRange{Min: 0, Max: 1}, path)
}

func renderBars(title string, bars []chart.Value, yRange *chart.ContinuousRange, path string) error {
	graph := chart.BarChart{
		Title:    title,
		Height:   420,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}
	if yRange != nil {
		graph.YAxis = chart.YAxis{Range: yRange}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering chart %q: %w", title, err)
	}
	return nil
}
