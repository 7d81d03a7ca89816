// Package pdf prints the filtered job report as a PDF through the browser.
package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobmarket-scraper/internal/export"
	"go-jobmarket-scraper/internal/models"
	"go-jobmarket-scraper/internal/report"
)

//go:embed templates/report.html
var templates embed.FS

const (
	// the report shows the first columns of the export table only
	reportColumns = 6
	MaxRows       = 20
)

// Report is what the template renders.
type Report struct {
	Title          string
	Generated      string
	Filters        []string
	Stats          report.Stats
	AvgSalary      string
	AvgExperience  string
	MostCommonRole string
	Columns        []string
	Rows           [][]string
}

// NewReport summarizes jobs and keeps the first MaxRows as table rows.
func NewReport(title string, filters []string, jobs []models.NormalizedJob, now time.Time) Report {
	stats := report.Summarize(jobs)
	r := Report{
		Title:          title,
		Generated:      now.Format("2006-01-02 15:04"),
		Filters:        filters,
		Stats:          stats,
		AvgSalary:      "N/A",
		AvgExperience:  "N/A",
		MostCommonRole: "N/A",
		Columns:        export.Header[:reportColumns],
	}
	if stats.AvgSalary != nil {
		r.AvgSalary = report.FormatRupees(*stats.AvgSalary)
	}
	if stats.AvgExperience != nil {
		r.AvgExperience = fmt.Sprintf("%.1f years", *stats.AvgExperience)
	}
	if stats.MostCommonRole != "" {
		r.MostCommonRole = stats.MostCommonRole
	}

	for i, job := range jobs {
		if i == MaxRows {
			break
		}
		r.Rows = append(r.Rows, export.Row(job)[:reportColumns])
	}
	return r
}

// RenderHTML executes the report template.
func RenderHTML(r Report) ([]byte, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	tmpl, err := template.New("report.html").Funcs(funcMap).ParseFS(templates, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// Generate renders r and prints it to A4 PDF in a fresh page of ctx.
func Generate(ctx playwright.BrowserContext, r Report) ([]byte, error) {
	html, err := RenderHTML(r)
	if err != nil {
		return nil, err
	}

	page, err := ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create new page: %w", err)
	}
	defer page.Close()

	if err := page.SetContent(string(html), playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, fmt.Errorf("could not set page content: %w", err)
	}

	pdfBytes, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		Landscape:       playwright.Bool(true),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String("10mm"),
			Bottom: playwright.String("10mm"),
			Left:   playwright.String("10mm"),
			Right:  playwright.String("10mm"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate PDF: %w", err)
	}
	return pdfBytes, nil
}

// SaveToFile writes pdfBytes, creating the directory first.
func SaveToFile(pdfBytes []byte, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}

	return os.WriteFile(outputPath, pdfBytes, 0644)
}
