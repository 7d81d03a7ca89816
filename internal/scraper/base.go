// Define the capabilities a job board scraper is built from
// Fetching is the only blocking step; extraction works on fetched HTML

package scraper

import (
	"context"
	"time"

	"go-jobmarket-scraper/internal/models"
)

// FetchRequest describes one page load.
type FetchRequest struct {
	URL string
	//WaitFor is a CSS selector that must appear before the page counts as loaded
	WaitFor string
	//Settle is a fixed pause after load for late scripts
	Settle time.Duration
}

// Fetcher loads a page and returns its rendered HTML. Implementations own
// retries; callers never retry.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (string, error)
}

// Discoverer collects candidate listing URLs for one role keyword.
type Discoverer interface {
	Discover(ctx context.Context, role string) ([]string, error)
}

// Extractor pulls the raw field set out of one listing page.
type Extractor interface {
	Extract(html, url string) (models.RawListing, error)
}

// Board is a job site: how to find listings and how to read them.
type Board interface {
	Discoverer
	Extractor
	//DetailRequest builds the fetch for one listing page
	DetailRequest(url string) FetchRequest
	//Name is the board name (Naukri, ...)
	Name() string
}

// Pause waits d or until ctx is done. It is the courtesy delay between
// requests.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 || ctx.Err() != nil {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
