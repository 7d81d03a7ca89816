package models

import (
	"time"
)

// RawListing is the field set pulled off one listing page before any
// normalization. An empty string means the field was not found on the page.
type RawListing struct {
	Role           string `json:"role"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	ExperienceText string `json:"experience_text"`
	SalaryText     string `json:"salary_text"`
	LocationText   string `json:"location_text"`
	Description    string `json:"description"`
	SkillsText     string `json:"skills_text"`
	PostedText     string `json:"posted_text"`
	URL            string `json:"url"`
}

// NormalizedJob is the persisted unit. Raw text columns are kept next to the
// typed values because the export table carries both.
type NormalizedJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Experience  string `json:"experience"`
	Salary      string `json:"salary"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Role        string `json:"role"`
	Skills      string `json:"skills"`
	PostedText  string `json:"posted_text"`

	MinSalary     *int64     `json:"min_salary"`
	MaxSalary     *int64     `json:"max_salary"`
	AvgSalary     *int64     `json:"avg_salary"`
	YearsExp      *float64   `json:"years_exp"`
	CleanLocation string     `json:"clean_location"`
	CleanSkills   string     `json:"clean_skills"`
	PostedDate    *time.Time `json:"posted_date_cleaned"`
}

// HasSalary reports whether a numeric salary was extracted.
func (j *NormalizedJob) HasSalary() bool {
	return j.AvgSalary != nil
}
