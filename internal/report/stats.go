// Package report summarizes stored jobs for the terminal and the API.
package report

import (
	"sort"

	"go-jobmarket-scraper/internal/models"
	"go-jobmarket-scraper/internal/normalize"
)

const topN = 10

// Count is one value of an exploded column and how often it appears.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RoleSalary struct {
	Role      string  `json:"role"`
	Jobs      int     `json:"jobs"`
	AvgSalary float64 `json:"avg_salary"`
}

// Stats is the dashboard summary of a job set. Averages are nil when no job
// carries the value.
type Stats struct {
	Total            int          `json:"total"`
	WithSalary       int          `json:"with_salary"`
	AvgSalary        *float64     `json:"avg_salary"`
	AvgExperience    *float64     `json:"avg_experience"`
	MedianExperience *float64     `json:"median_experience"`
	MostCommonRole   string       `json:"most_common_role"`
	SalaryByRole     []RoleSalary `json:"salary_by_role"`
	TopSkills        []Count      `json:"top_skills"`
	TopLocations     []Count      `json:"top_locations"`
	TopCompanies     []Count      `json:"top_companies"`
}

func Summarize(jobs []models.NormalizedJob) Stats {
	stats := Stats{Total: len(jobs)}

	var (
		salaries []float64
		years    []float64
		roles    = map[string]int{}
		skills   = map[string]int{}
		places   = map[string]int{}
		firms    = map[string]int{}
		bySalary = map[string][]float64{}
	)

	for _, job := range jobs {
		if job.AvgSalary != nil {
			stats.WithSalary++
			salaries = append(salaries, float64(*job.AvgSalary))
			bySalary[job.Role] = append(bySalary[job.Role], float64(*job.AvgSalary))
		}
		if job.YearsExp != nil {
			years = append(years, *job.YearsExp)
		}
		if job.Role != "" {
			roles[job.Role]++
		}
		if job.Company != "" {
			firms[job.Company]++
		}
		for _, s := range normalize.SplitList(job.CleanSkills) {
			skills[s]++
		}
		for _, l := range normalize.SplitList(job.CleanLocation) {
			if l != normalize.Unknown {
				places[l]++
			}
		}
	}

	stats.AvgSalary = mean(salaries)
	stats.AvgExperience = mean(years)
	stats.MedianExperience = median(years)

	if top := topCounts(roles, 1); len(top) > 0 {
		stats.MostCommonRole = top[0].Name
	}
	stats.TopSkills = topCounts(skills, topN)
	stats.TopLocations = topCounts(places, topN)
	stats.TopCompanies = topCounts(firms, topN)

	stats.SalaryByRole = []RoleSalary{}
	for role, values := range bySalary {
		stats.SalaryByRole = append(stats.SalaryByRole, RoleSalary{Role: role, Jobs: len(values), AvgSalary: *mean(values)})
	}
	sort.Slice(stats.SalaryByRole, func(i, j int) bool {
		a, b := stats.SalaryByRole[i], stats.SalaryByRole[j]
		if a.AvgSalary != b.AvgSalary {
			return a.AvgSalary > b.AvgSalary
		}
		return a.Role < b.Role
	})

	return stats
}

// topCounts orders by count descending, then name, and keeps n.
func topCounts(m map[string]int, n int) []Count {
	out := make([]Count, 0, len(m))
	for name, c := range m {
		out = append(out, Count{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

func median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	m := sorted[mid]
	if len(sorted)%2 == 0 {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}
