package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-jobmarket-scraper/internal/runner"
)

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"Data Analyst", "Data Analyst"},
		{"https://www.naukri.com/job-listings-1", "https://www\\.naukri\\.com/job\\-listings\\-1"},
		{"C++ (Senior)!", "C\\+\\+ \\(Senior\\)\\!"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeMarkdown(tt.in))
		})
	}
}

func TestSummaryMessage(t *testing.T) {
	start := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)
	s := &runner.Summary{
		RunID:      "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
		Roles: []*runner.RoleSummary{
			{Role: "Data Analyst", Counts: runner.Counts{Discovered: 10, Inserted: 8, Duplicates: 1, Failed: 1}},
		},
		Total:      runner.Counts{Discovered: 10, Inserted: 8, Duplicates: 1, Failed: 1},
		Failures:   []runner.Result{{URL: "https://x.in/a-1", Stage: "fetch", Status: runner.StatusFailed, Err: context.DeadlineExceeded}},
		PageErrors: []error{errors.New("503")},
	}

	msg := SummaryMessage("Naukri", s)
	assert.Contains(t, msg, "*Naukri scrape finished*")
	assert.Contains(t, msg, "`run-1`")
	assert.Contains(t, msg, "1m30s")
	assert.Contains(t, msg, "• Data Analyst: 8 new, 1 dup, 1 failed")
	assert.Contains(t, msg, "8 new of 10 found")
	assert.Contains(t, msg, "1 search pages failed")
	assert.Contains(t, msg, "fetch: https://x\\.in/a\\-1")
	assert.NotContains(t, msg, "skipped")
}

func TestSummaryMessage_TruncatesFailures(t *testing.T) {
	s := &runner.Summary{RunID: "r"}
	for i := 0; i < maxFailureLines+3; i++ {
		s.Failures = append(s.Failures, runner.Result{URL: "u", Stage: "extract"})
	}
	assert.Contains(t, SummaryMessage("Naukri", s), "…and 3 more")
}
