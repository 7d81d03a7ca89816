// Package database is the record sink: an insert-or-ignore table of
// normalized jobs keyed by listing URL.
package database

import (
	"context"
	"errors"
	"log"

	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/models"
)

var ErrNotFound = errors.New("job not found")

// Store persists NormalizedJobs. Upsert never overwrites: the first write for
// a URL wins and later writes report inserted=false with a nil error.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, job *models.NormalizedJob) (inserted bool, err error)
	GetByURL(ctx context.Context, url string) (*models.NormalizedJob, error)
	List(ctx context.Context) ([]models.NormalizedJob, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Open picks Postgres when a DATABASE_URL is configured and the SQLite file
// otherwise. The schema is not created here; callers run EnsureSchema.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	if cfg.DatabaseURL != "" {
		log.Println("🐘 Using Postgres store")
		pg, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	log.Printf("💾 Using SQLite store at %s", cfg.DatabasePath)
	lite, err := OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

const dateLayout = "2006-01-02"
