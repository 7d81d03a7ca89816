package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-jobmarket-scraper/internal/models"
)

// SQLiteStore keeps jobs in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; the crawl is sequential anyway
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		company TEXT,
		experience TEXT,
		salary TEXT,
		location TEXT,
		description TEXT,
		url TEXT NOT NULL UNIQUE,
		role TEXT,
		skills TEXT,
		posted_text TEXT,
		min_salary INTEGER,
		max_salary INTEGER,
		avg_salary INTEGER,
		years_exp REAL,
		clean_location TEXT,
		clean_skills TEXT,
		posted_date_cleaned TEXT,
		created_at TEXT NOT NULL
	);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create jobs table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Upsert(ctx context.Context, job *models.NormalizedJob) (bool, error) {
	query := `
		INSERT OR IGNORE INTO jobs (
			title, company, experience, salary, location, description, url, role, skills, posted_text,
			min_salary, max_salary, avg_salary, years_exp, clean_location, clean_skills, posted_date_cleaned, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var posted any
	if job.PostedDate != nil {
		posted = job.PostedDate.Format(dateLayout)
	}

	res, err := s.db.ExecContext(ctx, query,
		job.Title, job.Company, job.Experience, job.Salary, job.Location, job.Description, job.URL, job.Role, job.Skills, job.PostedText,
		nullableInt(job.MinSalary), nullableInt(job.MaxSalary), nullableInt(job.AvgSalary), nullableFloat(job.YearsExp),
		job.CleanLocation, job.CleanSkills, posted, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert job: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return n > 0, nil
}

const sqliteSelect = `SELECT title, company, experience, salary, location, description, url, role, skills, posted_text,
	min_salary, max_salary, avg_salary, years_exp, clean_location, clean_skills, posted_date_cleaned FROM jobs`

func (s *SQLiteStore) GetByURL(ctx context.Context, url string) (*models.NormalizedJob, error) {
	row := s.db.QueryRowContext(ctx, sqliteSelect+" WHERE url = ?", url)
	job, err := scanSQLiteJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job by URL: %w", err)
	}
	return job, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.NormalizedJob, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.NormalizedJob{}
	for rows.Next() {
		job, err := scanSQLiteJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteJob(row rowScanner) (*models.NormalizedJob, error) {
	var (
		job                   models.NormalizedJob
		title, company        sql.NullString
		experience, salary    sql.NullString
		location, description sql.NullString
		role, skills, posted  sql.NullString
		cleanLoc, cleanSkills sql.NullString
		minSal, maxSal        sql.NullInt64
		avgSal                sql.NullInt64
		yearsExp              sql.NullFloat64
		postedDate            sql.NullString
	)

	err := row.Scan(&title, &company, &experience, &salary, &location, &description, &job.URL, &role, &skills, &posted,
		&minSal, &maxSal, &avgSal, &yearsExp, &cleanLoc, &cleanSkills, &postedDate)
	if err != nil {
		return nil, err
	}

	job.Title = title.String
	job.Company = company.String
	job.Experience = experience.String
	job.Salary = salary.String
	job.Location = location.String
	job.Description = description.String
	job.Role = role.String
	job.Skills = skills.String
	job.PostedText = posted.String
	job.CleanLocation = cleanLoc.String
	job.CleanSkills = cleanSkills.String

	if minSal.Valid {
		job.MinSalary = &minSal.Int64
	}
	if maxSal.Valid {
		job.MaxSalary = &maxSal.Int64
	}
	if avgSal.Valid {
		job.AvgSalary = &avgSal.Int64
	}
	if yearsExp.Valid {
		job.YearsExp = &yearsExp.Float64
	}
	if postedDate.Valid && postedDate.String != "" {
		d, err := time.Parse(dateLayout, postedDate.String)
		if err != nil {
			return nil, fmt.Errorf("bad posted date %q: %w", postedDate.String, err)
		}
		job.PostedDate = &d
	}
	return &job, nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
