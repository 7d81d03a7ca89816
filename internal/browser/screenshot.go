package browser

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const maxSlugLen = 60

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// ScreenshotDebugger keeps a full-page screenshot of every fetch that failed,
// named after the failing stage and the listing it was on.
type ScreenshotDebugger struct {
	outputDir string
	now       func() time.Time
}

func NewScreenshotDebugger(dir string) (*ScreenshotDebugger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create screenshot dir: %w", err)
	}
	return &ScreenshotDebugger{outputDir: dir, now: time.Now}, nil
}

// Capture saves the current page and returns the file written.
func (s *ScreenshotDebugger) Capture(page playwright.Page, stage, pageURL string) (string, error) {
	path := filepath.Join(s.outputDir, s.filename(stage, pageURL))
	log.Printf("📸 %s: %s", stage, pageURL)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return "", err
	}

	log.Printf("   Screenshot saved: %s", path)
	return path, nil
}

// filename is <stage>_<url slug>_<timestamp>.png. The slug is the last path
// segment, or the host for a bare domain.
func (s *ScreenshotDebugger) filename(stage, pageURL string) string {
	parts := []string{slugify(stage)}
	if slug := urlSlug(pageURL); slug != "" {
		parts = append(parts, slug)
	}
	parts = append(parts, s.now().Format("20060102-150405.000"))
	return strings.Join(parts, "_") + ".png"
}

func urlSlug(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return slugify(raw)
	}
	segment := u.Host
	if trimmed := strings.Trim(u.Path, "/"); trimmed != "" {
		segment = trimmed[strings.LastIndex(trimmed, "/")+1:]
	}
	return slugify(segment)
}

func slugify(str string) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(str), "-"), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}
