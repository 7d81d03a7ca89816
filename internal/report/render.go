package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// FormatRupees prints an annual salary as "₹1,250,000 (12.5 LPA)".
func FormatRupees(v float64) string {
	return fmt.Sprintf("₹%s (%.1f LPA)", humanize.Comma(int64(v)), v/100000)
}

// colorSalary bands salaries the way recruiters read them: 20 LPA and up
// is high, under 6 LPA is entry level.
func colorSalary(v float64) string {
	s := FormatRupees(v)
	switch {
	case v >= 2000000:
		return pterm.Green(s)
	case v >= 1000000:
		return pterm.LightGreen(s)
	case v >= 600000:
		return pterm.Yellow(s)
	default:
		return pterm.Red(s)
	}
}

func orNA(v *float64, format func(float64) string) string {
	if v == nil {
		return "N/A"
	}
	return format(*v)
}

func years(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " years"
}

// Render writes the summary as pterm tables.
func Render(w io.Writer, s Stats) error {
	overview := pterm.TableData{
		{"Metric", "Value"},
		{"Jobs", humanize.Comma(int64(s.Total))},
		{"With salary", humanize.Comma(int64(s.WithSalary))},
		{"Average salary", orNA(s.AvgSalary, colorSalary)},
		{"Average experience", orNA(s.AvgExperience, years)},
		{"Median experience", orNA(s.MedianExperience, years)},
		{"Most common role", naIfEmpty(s.MostCommonRole)},
	}

	bySalary := pterm.TableData{{"Role", "Jobs", "Average salary"}}
	for _, rs := range s.SalaryByRole {
		bySalary = append(bySalary, []string{rs.Role, strconv.Itoa(rs.Jobs), colorSalary(rs.AvgSalary)})
	}

	sections := []struct {
		title string
		data  pterm.TableData
	}{
		{"📊 Overview", overview},
		{"💰 Salary by role", bySalary},
		{"🛠️ Top skills", countTable("Skill", s.TopSkills)},
		{"📍 Top locations", countTable("Location", s.TopLocations)},
		{"🏢 Top companies", countTable("Company", s.TopCompanies)},
	}

	for _, sec := range sections {
		if len(sec.data) == 1 {
			continue
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(sec.data).Srender()
		if err != nil {
			return fmt.Errorf("render %s: %w", sec.title, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", pterm.Bold.Sprint(sec.title), table); err != nil {
			return err
		}
	}
	return nil
}

func countTable(label string, counts []Count) pterm.TableData {
	data := pterm.TableData{{label, "Jobs"}}
	for _, c := range counts {
		data = append(data, []string{c.Name, strconv.Itoa(c.Count)})
	}
	return data
}

func naIfEmpty(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
