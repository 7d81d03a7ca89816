package scraper

import "fmt"

// PageError is a search results page that could not be loaded. Discovery
// stops for the role but keeps the links collected before it.
type PageError struct {
	Role string
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("role %q page %d: %v", e.Role, e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Stage names where a single listing can fail.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageStore   = "store"
)

// ListingError is a failure confined to one listing.
type ListingError struct {
	URL   string
	Stage string
	Err   error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.URL, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}
