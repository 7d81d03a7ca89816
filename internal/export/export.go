// Package export writes stored jobs as flat tables (CSV and XLSX) with the
// same column set the analysis notebooks read.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"go-jobmarket-scraper/internal/models"
)

// Header is the column order of every export.
var Header = []string{
	"title", "company", "experience", "salary", "location", "description", "url", "role", "skills",
	"min_salary", "max_salary", "avg_salary", "years_exp", "clean_location", "clean_skills", "posted_date_cleaned",
}

const (
	missingText = "N/A"
	dateLayout  = "2006-01-02"
	sheetName   = "Jobs"
)

// cells returns the job's values in Header order. Raw text that was not
// found becomes "N/A"; missing numbers and dates become nil (an empty cell).
func cells(job models.NormalizedJob) []any {
	return []any{
		text(job.Title), text(job.Company), text(job.Experience), text(job.Salary), text(job.Location),
		text(job.Description), job.URL, job.Role, text(job.Skills),
		intCell(job.MinSalary), intCell(job.MaxSalary), intCell(job.AvgSalary), floatCell(job.YearsExp),
		job.CleanLocation, job.CleanSkills, dateCell(job),
	}
}

// Row renders one job as CSV strings.
func Row(job models.NormalizedJob) []string {
	values := cells(job)
	row := make([]string, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case nil:
			row[i] = ""
		case string:
			row[i] = v
		case int64:
			row[i] = strconv.FormatInt(v, 10)
		case float64:
			row[i] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			row[i] = fmt.Sprint(v)
		}
	}
	return row
}

func WriteCSV(w io.Writer, jobs []models.NormalizedJob) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, job := range jobs {
		if err := cw.Write(Row(job)); err != nil {
			return fmt.Errorf("write %s: %w", job.URL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes one "Jobs" sheet. Salary and experience stay numeric so
// spreadsheets can aggregate them.
func WriteXLSX(w io.Writer, jobs []models.NormalizedJob) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}

	for i, job := range jobs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := cells(job)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	// Widen the text-heavy columns
	_ = f.SetColWidth(sheetName, "A", "B", 28) // title, company
	_ = f.SetColWidth(sheetName, "F", "F", 60) // description
	_ = f.SetColWidth(sheetName, "G", "G", 48) // url

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func text(s string) string {
	if s == "" {
		return missingText
	}
	return s
}

func intCell(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func dateCell(job models.NormalizedJob) any {
	if job.PostedDate == nil {
		return nil
	}
	return job.PostedDate.Format(dateLayout)
}
