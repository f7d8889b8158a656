// internal/service/report/template.go

package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"

	"trendwatch/internal/domain/trend"
)

//go:embed weekly_report.html.tmpl
var reportTemplateSource string

var reportTemplate = template.Must(
	template.New("weekly_report").Funcs(template.FuncMap{
		"fmtScore": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"fmtTime": func(r trend.Record) string {
			if r.CreatedAt == nil {
				return "-"
			}
			return r.CreatedAt.Format("2006-01-02 15:04")
		},
	}).Parse(reportTemplateSource),
)

// reportData is the template context for one rendered report.
type reportData struct {
	PeriodLabel string
	Geo         string
	GeneratedAt string
	Summary     Summary
	CountsImage string
	SentImage   string
}

func writeHTML(path string, data reportData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("rendering report template: %w", err)
	}
	return nil
}
