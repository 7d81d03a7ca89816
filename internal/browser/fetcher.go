package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobmarket-scraper/internal/scraper"
)

// ErrBlocked means the site answered with a bot challenge instead of the page.
var ErrBlocked = errors.New("blocked by bot challenge")

// challengeWait is how long a challenge page gets to clear itself.
const challengeWait = 7 * time.Second

var blockTitles = []string{"Attention Required", "Just a moment", "Cloudflare", "Access Denied"}

func isBlockTitle(title string) bool {
	for _, marker := range blockTitles {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

// FetcherOptions tunes page loads.
type FetcherOptions struct {
	NavigationTimeout time.Duration
	WaitTimeout       time.Duration
	//Humanize moves the mouse and scrolls before reading the page
	Humanize bool
	//Screenshots is optional; nil disables failure captures
	Screenshots *ScreenshotDebugger
}

// PageFetcher loads pages in one reused tab. It is not safe for concurrent
// use; a run fetches strictly one page at a time.
type PageFetcher struct {
	page playwright.Page
	opts FetcherOptions
}

func NewPageFetcher(page playwright.Page, opts FetcherOptions) *PageFetcher {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 30 * time.Second
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = 15 * time.Second
	}
	return &PageFetcher{page: page, opts: opts}
}

func (f *PageFetcher) Fetch(ctx context.Context, req scraper.FetchRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	resp, err := f.page.Goto(req.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(f.opts.NavigationTimeout.Milliseconds())),
	})
	if err != nil {
		f.capture("navigation-failed", req.URL)
		return "", fmt.Errorf("navigate: %w", err)
	}
	if resp != nil && resp.Status() >= 400 {
		f.capture("http-error", req.URL)
		return "", fmt.Errorf("HTTP error: %d", resp.Status())
	}

	if title, _ := f.page.Title(); isBlockTitle(title) {
		log.Printf("    🛡️ Bot challenge detected on %s. Waiting %s...", req.URL, challengeWait)
		if err := scraper.Pause(ctx, challengeWait); err != nil {
			return "", err
		}
		if title, _ := f.page.Title(); isBlockTitle(title) {
			f.capture("challenge", req.URL)
			return "", ErrBlocked
		}
	}

	if req.WaitFor != "" {
		err := f.page.Locator(req.WaitFor).First().WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: playwright.Float(float64(f.opts.WaitTimeout.Milliseconds())),
		})
		if err != nil {
			f.capture("selector-timeout", req.URL)
			return "", fmt.Errorf("wait for %q: %w", req.WaitFor, err)
		}
	}

	if err := scraper.Pause(ctx, req.Settle); err != nil {
		return "", err
	}

	if f.opts.Humanize {
		if err := MouseJiggle(f.page); err != nil {
			log.Printf("    ⚠️ Mouse jiggle failed: %v", err)
		}
		if err := SmoothScroll(f.page); err != nil {
			log.Printf("    ⚠️ Scroll failed: %v", err)
		}
	}

	html, err := f.page.Content()
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return html, nil
}

func (f *PageFetcher) capture(name, url string) {
	if f.opts.Screenshots == nil {
		return
	}
	_, _ = f.opts.Screenshots.Capture(f.page, name, url)
}
