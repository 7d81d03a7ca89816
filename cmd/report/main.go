package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go-jobmarket-scraper/internal/browser"
	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/database"
	"go-jobmarket-scraper/internal/filter"
	"go-jobmarket-scraper/internal/models"
	"go-jobmarket-scraper/internal/pdf"
	"go-jobmarket-scraper/internal/report"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func run() error {
	roles := flag.String("role", "", "comma-separated roles")
	locations := flag.String("location", "", "comma-separated locations")
	skills := flag.String("skill", "", "comma-separated skills")
	withSalary := flag.Bool("with-salary", false, "only jobs with a parsed salary and experience")
	days := flag.Int("days", 0, "only jobs posted in the last N days")
	pdfOut := flag.String("pdf", "", "also print the report to this PDF file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	jobs, err := store.List(ctx)
	if err != nil {
		return err
	}

	criteria := filter.Criteria{
		Roles:      splitFlag(*roles),
		Locations:  splitFlag(*locations),
		Skills:     splitFlag(*skills),
		WithSalary: *withSalary,
	}
	if *days > 0 {
		window, err := filter.PostedWithinDays(*days)
		if err != nil {
			return err
		}
		criteria.PostedWithin = window
	}
	jobs = filter.Apply(jobs, criteria, time.Now())

	if first, last := filter.DateRange(jobs); first != nil {
		log.Printf("📅 Posted between %s and %s", first.Format("2006-01-02"), last.Format("2006-01-02"))
	}
	if err := report.Render(os.Stdout, report.Summarize(jobs)); err != nil {
		return err
	}

	if *pdfOut != "" {
		return writePDF(ctx, cfg, *pdfOut, describe(criteria), jobs)
	}
	return nil
}

func writePDF(ctx context.Context, cfg *config.Config, path string, filters []string, jobs []models.NormalizedJob) error {
	pm, err := browser.NewPlaywright(ctx, !cfg.Headed)
	if err != nil {
		return err
	}
	defer pm.Close()

	browserCtx, err := pm.NewContext(nil)
	if err != nil {
		return err
	}
	defer browserCtx.Close()

	data, err := pdf.Generate(browserCtx, pdf.NewReport("Job Market Report", filters, jobs, time.Now()))
	if err != nil {
		return err
	}
	if err := pdf.SaveToFile(data, path); err != nil {
		return err
	}
	log.Printf("📄 PDF report saved: %s", path)
	return nil
}

func describe(c filter.Criteria) []string {
	var out []string
	if len(c.Roles) > 0 {
		out = append(out, "role="+strings.Join(c.Roles, ","))
	}
	if len(c.Locations) > 0 {
		out = append(out, "location="+strings.Join(c.Locations, ","))
	}
	if len(c.Skills) > 0 {
		out = append(out, "skill="+strings.Join(c.Skills, ","))
	}
	if c.WithSalary {
		out = append(out, "with salary")
	}
	if c.PostedWithin > 0 {
		out = append(out, fmt.Sprintf("posted within %d days", int(c.PostedWithin.Hours()/24)))
	}
	return out
}

func splitFlag(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
