// Package normalize turns raw listing text into typed values. Every function
// here is pure; an unreadable field comes back as nil or "" and never as an
// error.
package normalize

import (
	"time"

	"go-jobmarket-scraper/internal/models"
)

// Listing runs every field normalizer over raw. now anchors relative posted
// dates.
func Listing(raw models.RawListing, now time.Time) models.NormalizedJob {
	minSal, maxSal, avgSal := ParseSalary(raw.SalaryText)

	return models.NormalizedJob{
		Title:       raw.Title,
		Company:     raw.Company,
		Experience:  raw.ExperienceText,
		Salary:      raw.SalaryText,
		Location:    raw.LocationText,
		Description: raw.Description,
		URL:         raw.URL,
		Role:        raw.Role,
		Skills:      raw.SkillsText,
		PostedText:  raw.PostedText,

		MinSalary:     minSal,
		MaxSalary:     maxSal,
		AvgSalary:     avgSal,
		YearsExp:      ParseExperience(raw.ExperienceText),
		CleanLocation: CleanLocation(raw.LocationText),
		CleanSkills:   CleanSkills(raw.SkillsText),
		PostedDate:    ParsePostedDate(raw.PostedText, now),
	}
}
