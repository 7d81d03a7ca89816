// Package runner drives one scrape: discover listings per role, fetch each
// detail page, normalize it and hand it to the store.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"go-jobmarket-scraper/internal/database"
	"go-jobmarket-scraper/internal/normalize"
	"go-jobmarket-scraper/internal/scraper"
)

// Status is the outcome of one listing.
type Status string

const (
	StatusInserted  Status = "inserted"
	StatusDuplicate Status = "duplicate"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Result is what happened to one listing URL.
type Result struct {
	Role   string
	URL    string
	Status Status
	//Stage is set only for failures (fetch, extract, store)
	Stage string
	Err   error
}

// SeenSet lets a run skip listings handled by an earlier run.
type SeenSet interface {
	IsSeen(url string) bool
	Add(urls ...string)
}

type Runner struct {
	board        scraper.Board
	fetcher      scraper.Fetcher
	store        database.Store
	listingDelay time.Duration

	//Seen is optional; nil visits every listing
	Seen SeenSet
	//Now anchors relative posted dates; defaults to time.Now
	Now func() time.Time
	//OnDiscover and OnResult are progress hooks, both optional
	OnDiscover func(role string, links int)
	OnResult   func(Result)
}

func New(board scraper.Board, fetcher scraper.Fetcher, store database.Store, listingDelay time.Duration) *Runner {
	return &Runner{
		board:        board,
		fetcher:      fetcher,
		store:        store,
		listingDelay: listingDelay,
		Now:          time.Now,
	}
}

// Run scrapes every role in order. Only a schema failure or a cancelled
// context ends it early; listing and page failures are counted in the
// Summary. On cancellation the partial Summary is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, roles []string) (*Summary, error) {
	if err := r.store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	summary := newSummary(uuid.NewString(), r.now())
	log.Printf("🚀 Run %s: scraping %d roles on %s", summary.RunID, len(roles), r.board.Name())

	for _, role := range roles {
		if err := ctx.Err(); err != nil {
			summary.finish(r.now())
			return summary, err
		}
		if err := r.runRole(ctx, role, summary); err != nil {
			summary.finish(r.now())
			return summary, err
		}
	}

	summary.finish(r.now())
	log.Printf("✅ Run %s done: %d inserted, %d duplicates, %d skipped, %d failed",
		summary.RunID, summary.Total.Inserted, summary.Total.Duplicates, summary.Total.Skipped, summary.Total.Failed)
	return summary, nil
}

func (r *Runner) runRole(ctx context.Context, role string, summary *Summary) error {
	log.Printf("🔍 Searching %s for %q...", r.board.Name(), role)
	stats := summary.role(role)

	links, err := r.board.Discover(ctx, role)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		var pageErr *scraper.PageError
		if errors.As(err, &pageErr) {
			summary.PageErrors = append(summary.PageErrors, pageErr)
		} else {
			summary.PageErrors = append(summary.PageErrors, &scraper.PageError{Role: role, Err: err})
		}
	}
	stats.Discovered = len(links)
	if r.OnDiscover != nil {
		r.OnDiscover(role, len(links))
	}
	log.Printf("🔗 %q: %d listings found", role, len(links))

	for i, link := range links {
		if i > 0 {
			if err := scraper.Pause(ctx, r.listingDelay); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		res := r.scrapeListing(ctx, role, link)
		if res.Status == StatusFailed && ctx.Err() != nil {
			return ctx.Err()
		}
		summary.record(res)
		if r.OnResult != nil {
			r.OnResult(res)
		}
	}
	return nil
}

func (r *Runner) scrapeListing(ctx context.Context, role, link string) Result {
	res := Result{Role: role, URL: link}

	if r.Seen != nil && r.Seen.IsSeen(link) {
		res.Status = StatusSkipped
		return res
	}

	html, err := r.fetcher.Fetch(ctx, r.board.DetailRequest(link))
	if err != nil {
		return failed(res, scraper.StageFetch, err)
	}

	raw, err := r.board.Extract(html, link)
	if err != nil {
		return failed(res, scraper.StageExtract, err)
	}
	// The same listing can show up under several roles; the first role
	// that stores it owns it.
	raw.Role = role
	raw.URL = link

	job := normalize.Listing(raw, r.now())
	inserted, err := r.store.Upsert(ctx, &job)
	if err != nil {
		return failed(res, scraper.StageStore, err)
	}

	if inserted {
		res.Status = StatusInserted
		log.Printf("  💾 Saved: %s @ %s", orDash(job.Title), orDash(job.Company))
	} else {
		res.Status = StatusDuplicate
	}
	if r.Seen != nil {
		r.Seen.Add(link)
	}
	return res
}

func failed(res Result, stage string, err error) Result {
	res.Status = StatusFailed
	res.Stage = stage
	res.Err = &scraper.ListingError{URL: res.URL, Stage: stage, Err: err}
	log.Printf("  ⚠️ %v", res.Err)
	return res
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
