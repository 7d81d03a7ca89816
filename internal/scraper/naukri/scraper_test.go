package naukri

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/scraper"
)

// fakeFetcher serves canned HTML per URL and records every request.
type fakeFetcher struct {
	pages    map[string]string
	failures map[string]error
	requests []scraper.FetchRequest
}

func (f *fakeFetcher) Fetch(ctx context.Context, req scraper.FetchRequest) (string, error) {
	f.requests = append(f.requests, req)
	if err, ok := f.failures[req.URL]; ok {
		return "", err
	}
	html, ok := f.pages[req.URL]
	if !ok {
		return "", fmt.Errorf("no page for %s", req.URL)
	}
	return html, nil
}

func resultsPage(prefix string, n int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<article><a class="title" href="/job-listings-%s-%d">Job %d</a></article>`, prefix, i, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:  "https://www.naukri.com",
		MaxPages: 5,
		PageSize: 20,
	}
}

func TestNaukriScraper_SearchURL(t *testing.T) {
	s := NewNaukriScraper(testConfig(), nil)

	assert.Equal(t, "https://www.naukri.com/data-analyst-jobs-1?k=Data%20Analyst", s.SearchURL("Data Analyst", 1))
	assert.Equal(t, "https://www.naukri.com/qa-testing-jobs-3?k=QA%20Testing", s.SearchURL(" QA Testing ", 3))
	assert.Equal(t, "Naukri", s.Name())
}

func TestNaukriScraper_Discover_StopsAtShortPage(t *testing.T) {
	cfg := testConfig()
	s := NewNaukriScraper(cfg, nil)
	fetcher := &fakeFetcher{pages: map[string]string{
		s.SearchURL("Data Analyst", 1): resultsPage("p1", 20),
		s.SearchURL("Data Analyst", 2): resultsPage("p2", 7),
		s.SearchURL("Data Analyst", 3): resultsPage("p3", 20),
	}}
	s.fetcher = fetcher

	links, err := s.Discover(context.Background(), "Data Analyst")
	require.NoError(t, err)

	assert.Len(t, links, 27)
	require.Len(t, fetcher.requests, 2, "page 3 must never be fetched")
	assert.Equal(t, listingLinkSelector, fetcher.requests[0].WaitFor)
	assert.Equal(t, "https://www.naukri.com/job-listings-p1-0", links[0])
	assert.Equal(t, "https://www.naukri.com/job-listings-p2-6", links[26])
}

func TestNaukriScraper_Discover_MaxPages(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPages = 2
	s := NewNaukriScraper(cfg, nil)
	fetcher := &fakeFetcher{pages: map[string]string{
		s.SearchURL("AI Engineer", 1): resultsPage("p1", 20),
		s.SearchURL("AI Engineer", 2): resultsPage("p2", 20),
		s.SearchURL("AI Engineer", 3): resultsPage("p3", 20),
	}}
	s.fetcher = fetcher

	links, err := s.Discover(context.Background(), "AI Engineer")
	require.NoError(t, err)
	assert.Len(t, links, 40)
	assert.Len(t, fetcher.requests, 2)
}

func TestNaukriScraper_Discover_PageErrorKeepsPartialLinks(t *testing.T) {
	s := NewNaukriScraper(testConfig(), nil)
	fetcher := &fakeFetcher{
		pages: map[string]string{
			s.SearchURL("Cloud Computing", 1): resultsPage("p1", 20),
		},
		failures: map[string]error{
			s.SearchURL("Cloud Computing", 2): errors.New("timeout waiting for a.title"),
		},
	}
	s.fetcher = fetcher

	links, err := s.Discover(context.Background(), "Cloud Computing")
	require.Error(t, err)

	var pageErr *scraper.PageError
	require.ErrorAs(t, err, &pageErr)
	assert.Equal(t, 2, pageErr.Page)
	assert.Equal(t, "Cloud Computing", pageErr.Role)
	assert.Len(t, links, 20, "links from page 1 survive the failure")
	assert.Len(t, fetcher.requests, 2)
}

func TestNaukriScraper_Discover_DedupsAcrossPages(t *testing.T) {
	s := NewNaukriScraper(testConfig(), nil)
	fetcher := &fakeFetcher{pages: map[string]string{
		s.SearchURL("NLP Researcher", 1): resultsPage("same", 20),
		s.SearchURL("NLP Researcher", 2): resultsPage("same", 3),
	}}
	s.fetcher = fetcher

	links, err := s.Discover(context.Background(), "NLP Researcher")
	require.NoError(t, err)
	assert.Len(t, links, 20)
}

func TestNaukriScraper_Discover_Cancelled(t *testing.T) {
	s := NewNaukriScraper(testConfig(), nil)
	fetcher := &fakeFetcher{pages: map[string]string{
		s.SearchURL("Data Scientist", 1): resultsPage("p1", 20),
	}}
	s.fetcher = fetcher
	s.cfg.PageDelay = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	links, err := s.Discover(ctx, "Data Scientist")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, links, 20)
}

func TestNaukriScraper_DetailRequest(t *testing.T) {
	s := NewNaukriScraper(testConfig(), nil)
	req := s.DetailRequest(listingURL)
	assert.Equal(t, listingURL, req.URL)
	assert.Empty(t, req.WaitFor)
}
