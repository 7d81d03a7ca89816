package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-jobmarket-scraper/internal/models"
)

// PostgresStore keeps jobs in a shared Postgres database.
type PostgresStore struct {
	db *pgxpool.Pool
}

func ConnectPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour

	// Poolers in transaction mode (PgBouncer, Supabase) break prepared
	// statements, so the statement cache stays off.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

func (r *PostgresStore) Close() error {
	if r.db != nil {
		r.db.Close()
	}
	return nil
}

func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		experience TEXT NOT NULL DEFAULT '',
		salary TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '',
		posted_text TEXT NOT NULL DEFAULT '',
		min_salary BIGINT,
		max_salary BIGINT,
		avg_salary BIGINT,
		years_exp DOUBLE PRECISION,
		clean_location TEXT NOT NULL DEFAULT '',
		clean_skills TEXT NOT NULL DEFAULT '',
		posted_date_cleaned DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create jobs table: %w", err)
	}
	return nil
}

// Upsert inserts job unless its URL is already stored.
func (r *PostgresStore) Upsert(ctx context.Context, job *models.NormalizedJob) (bool, error) {
	query := `
		INSERT INTO jobs (
			title, company, experience, salary, location, description, url, role, skills, posted_text,
			min_salary, max_salary, avg_salary, years_exp, clean_location, clean_skills, posted_date_cleaned
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (url) DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		job.Title, job.Company, job.Experience, job.Salary, job.Location, job.Description, job.URL, job.Role, job.Skills, job.PostedText,
		job.MinSalary, job.MaxSalary, job.AvgSalary, job.YearsExp, job.CleanLocation, job.CleanSkills, job.PostedDate,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const postgresSelect = `SELECT title, company, experience, salary, location, description, url, role, skills, posted_text,
	min_salary, max_salary, avg_salary, years_exp, clean_location, clean_skills, posted_date_cleaned FROM jobs`

func (r *PostgresStore) GetByURL(ctx context.Context, url string) (*models.NormalizedJob, error) {
	job, err := scanPostgresJob(r.db.QueryRow(ctx, postgresSelect+" WHERE url = $1", url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job by URL: %w", err)
	}
	return job, nil
}

func (r *PostgresStore) List(ctx context.Context) ([]models.NormalizedJob, error) {
	rows, err := r.db.Query(ctx, postgresSelect+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.NormalizedJob{}
	for rows.Next() {
		job, err := scanPostgresJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (r *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM jobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return n, nil
}

func scanPostgresJob(row pgx.Row) (*models.NormalizedJob, error) {
	var job models.NormalizedJob
	err := row.Scan(&job.Title, &job.Company, &job.Experience, &job.Salary, &job.Location, &job.Description, &job.URL, &job.Role, &job.Skills, &job.PostedText,
		&job.MinSalary, &job.MaxSalary, &job.AvgSalary, &job.YearsExp, &job.CleanLocation, &job.CleanSkills, &job.PostedDate)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
