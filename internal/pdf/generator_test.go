package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobmarket-scraper/internal/browser"
	"go-jobmarket-scraper/internal/models"
)

var now = time.Date(2025, 3, 20, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestNewReport(t *testing.T) {
	var jobs []models.NormalizedJob
	for i := 0; i < MaxRows+5; i++ {
		jobs = append(jobs, models.NormalizedJob{URL: fmt.Sprintf("u%d", i), Title: "Analyst", Role: "Data Analyst", AvgSalary: ptr(int64(1000000))})
	}

	r := NewReport("Job Market Report", []string{"role=Data Analyst"}, jobs, now)
	assert.Equal(t, "2025-03-20 09:30", r.Generated)
	assert.Equal(t, []string{"title", "company", "experience", "salary", "location", "description"}, r.Columns)
	assert.Len(t, r.Rows, MaxRows)
	assert.Equal(t, "N/A", r.Rows[0][1], "missing company")
	assert.Equal(t, "₹1,000,000 (10.0 LPA)", r.AvgSalary)
	assert.Equal(t, "N/A", r.AvgExperience)
	assert.Equal(t, "Data Analyst", r.MostCommonRole)
}

func TestRenderHTML(t *testing.T) {
	jobs := []models.NormalizedJob{
		{URL: "u1", Title: "Data <Analyst>", Company: "Acme", CleanSkills: "Python, Sql", YearsExp: ptr(2.0)},
	}
	html, err := RenderHTML(NewReport("Job Market Report", []string{"skill=Python", "with_salary"}, jobs, now))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<h1>Job Market Report</h1>")
	assert.Contains(t, out, "Filters: skill=Python; with_salary")
	assert.Contains(t, out, "Data &lt;Analyst&gt;", "cells are escaped")
	assert.Contains(t, out, "<td>Python</td>")
	assert.Contains(t, out, "2.0 years")
	assert.NotContains(t, out, "(first ")
}

//integration test: needs the playwright driver and chromium installed
func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}

	pm, err := browser.NewPlaywright(context.Background(), true)
	if err != nil {
		t.Skipf("playwright not available: %v", err)
	}
	defer pm.Close()

	browserCtx, err := pm.NewContext(nil)
	require.NoError(t, err)
	defer browserCtx.Close()

	data, err := Generate(browserCtx, NewReport("Job Market Report", nil, nil, now))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	out := filepath.Join(t.TempDir(), "reports", "jobs.pdf")
	require.NoError(t, SaveToFile(data, out))
	_, err = os.Stat(out)
	assert.NoError(t, err)
}
