package naukri

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/models"
	"go-jobmarket-scraper/internal/scraper"
)

const BoardName = "Naukri"

// listingLinkSelector matches one result card title on a search page.
const listingLinkSelector = "a.title"

type NaukriScraper struct {
	cfg       *config.Config
	fetcher   scraper.Fetcher
	extractor *Extractor
}

func NewNaukriScraper(cfg *config.Config, fetcher scraper.Fetcher) *NaukriScraper {
	return &NaukriScraper{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: NewExtractor(),
	}
}

func (s *NaukriScraper) Name() string {
	return BoardName
}

// SearchURL builds the results page URL for role: "Data Analyst", 2 ->
// https://www.naukri.com/data-analyst-jobs-2?k=Data%20Analyst
func (s *NaukriScraper) SearchURL(role string, page int) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(role)), " ", "-")
	base := strings.TrimRight(s.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/%s-jobs-%d?k=%s", base, slug, page, url.PathEscape(strings.TrimSpace(role)))
}

// Discover walks result pages 1..MaxPages and returns listing URLs in the
// order found. It stops at the first page with fewer than PageSize links.
// A page that fails to load ends the walk; the links gathered so far are
// returned together with a *scraper.PageError.
func (s *NaukriScraper) Discover(ctx context.Context, role string) ([]string, error) {
	var links []string
	seen := make(map[string]bool)

	for page := 1; page <= s.cfg.MaxPages; page++ {
		if page > 1 {
			if err := scraper.Pause(ctx, s.cfg.PageDelay); err != nil {
				return links, err
			}
		}

		pageURL := s.SearchURL(role, page)
		log.Printf("  🔗 Visiting: %s", pageURL)

		html, err := s.fetcher.Fetch(ctx, scraper.FetchRequest{
			URL:     pageURL,
			WaitFor: listingLinkSelector,
			Settle:  s.cfg.SettleDelay,
		})
		if err != nil {
			log.Printf("  ⚠️ Error getting job links for role '%s' page %d: %v", role, page, err)
			return links, &scraper.PageError{Role: role, Page: page, Err: err}
		}

		pageLinks, err := ExtractLinks(html, pageURL)
		if err != nil {
			log.Printf("  ⚠️ Could not parse results for role '%s' page %d: %v", role, page, err)
			return links, &scraper.PageError{Role: role, Page: page, Err: err}
		}
		log.Printf("  ✅ Found %d job links", len(pageLinks))

		for _, link := range pageLinks {
			if !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
		}

		//short page means last page
		if len(pageLinks) < s.cfg.PageSize {
			break
		}
	}

	return links, nil
}

// DetailRequest is the fetch for one listing page.
func (s *NaukriScraper) DetailRequest(listingURL string) scraper.FetchRequest {
	return scraper.FetchRequest{
		URL:    listingURL,
		Settle: s.cfg.SettleDelay,
	}
}

func (s *NaukriScraper) Extract(html, listingURL string) (models.RawListing, error) {
	return s.extractor.Extract(html, listingURL)
}
