package browser

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// PlaywrightManager owns the driver process and the one browser a run uses.
// Close must be called on every exit path or the chromium process leaks.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewPlaywright(ctx context.Context, headless bool) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext opens an isolated browser context preloaded with cookies.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	browserCtx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport: &playwright.Size{
			Width:  1366,
			Height: 768,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := browserCtx.AddCookies(cookies); err != nil {
			_ = browserCtx.Close()
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return browserCtx, nil
}

func (pm *PlaywrightManager) Close() error {
	var errs []error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	if len(errs) == 0 {
		log.Println("🧹 Browser closed")
	}
	return errors.Join(errs...)
}
