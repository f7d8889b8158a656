// internal/service/report/pdf.go

package report

import (
	"fmt"
	"os"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// convertToPDF converts a rendered HTML report through wkhtmltopdf and
// returns the PDF path. An absent binary surfaces as an error so the
// caller can fall back to the HTML artifact.
func convertToPDF(htmlPath string) (string, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return "", fmt.Errorf("wkhtmltopdf unavailable: %w", err)
	}

	f, err := os.Open(htmlPath)
	if err != nil {
		return "", fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	pdfg.AddPage(wkhtmltopdf.NewPageReader(f))
	if err := pdfg.Create(); err != nil {
		return "", fmt.Errorf("converting report to pdf: %w", err)
	}

	pdfPath := strings.TrimSuffix(htmlPath, ".html") + ".pdf"
	if err := pdfg.WriteFile(pdfPath); err != nil {
		return "", fmt.Errorf("writing pdf: %w", err)
	}
	return pdfPath, nil
}
