// Package filter selects stored jobs the way the dashboard does: multi-select
// roles, locations and skills, plus a salary-only toggle.
package filter

import (
	"strings"
	"time"

	"go-jobmarket-scraper/internal/models"
	"go-jobmarket-scraper/internal/normalize"
)

// Criteria is one filter selection. Empty lists match everything.
type Criteria struct {
	Roles     []string
	Locations []string
	Skills    []string
	//WithSalary keeps only jobs with a parsed salary and experience
	WithSalary bool
	//PostedWithin drops jobs posted earlier than now minus this; 0 disables
	PostedWithin time.Duration
}

func (c Criteria) IsEmpty() bool {
	return len(c.Roles) == 0 && len(c.Locations) == 0 && len(c.Skills) == 0 && !c.WithSalary && c.PostedWithin == 0
}

// ShouldIncludeJob reports whether job passes every active part of c.
// Locations and skills match against the individual items of the
// comma-joined clean columns, case-insensitively.
func ShouldIncludeJob(job models.NormalizedJob, c Criteria, now time.Time) bool {
	if c.WithSalary && (job.AvgSalary == nil || job.YearsExp == nil) {
		return false
	}

	if len(c.Roles) > 0 && !containsFold(c.Roles, job.Role) {
		return false
	}

	if len(c.Locations) > 0 && !anyItem(job.CleanLocation, c.Locations) {
		return false
	}

	if len(c.Skills) > 0 && !anyItem(job.CleanSkills, c.Skills) {
		return false
	}

	if c.PostedWithin > 0 && !IsRecentJob(job.PostedDate, now, c.PostedWithin) {
		return false
	}

	return true
}

// Apply keeps the jobs that pass c, in order.
func Apply(jobs []models.NormalizedJob, c Criteria, now time.Time) []models.NormalizedJob {
	out := make([]models.NormalizedJob, 0, len(jobs))
	for _, job := range jobs {
		if ShouldIncludeJob(job, c, now) {
			out = append(out, job)
		}
	}
	return out
}

func anyItem(joined string, wanted []string) bool {
	for _, item := range normalize.SplitList(joined) {
		if item == normalize.Unknown {
			continue
		}
		if containsFold(wanted, item) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
