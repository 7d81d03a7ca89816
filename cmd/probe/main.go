// Probe checks a deployment end to end without writing anything: config,
// store connection, cookies, one search page and the first listing on it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-jobmarket-scraper/internal/browser"
	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/database"
	"go-jobmarket-scraper/internal/normalize"
	"go-jobmarket-scraper/internal/scraper"
	"go-jobmarket-scraper/internal/scraper/naukri"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func run() error {
	role := flag.String("role", config.DefaultRoles[0], "role keyword to search")
	flag.Parse()

	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	fmt.Printf("✅ Config loaded. Base URL: %s, cookies: %s\n", cfg.BaseURL, cfg.CookiesPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("💾 Testing store connection...")
	store, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Store reachable, %d jobs stored\n", n)

	fmt.Println("🍪 Testing cookie loading...")
	cookies, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, "cookies-naukri.json"))
	if err != nil {
		fmt.Printf("⚠️ No cookies: %v\n", err)
	} else {
		fmt.Printf("✅ Loaded %d cookies\n", len(cookies))
	}

	fmt.Println("🌐 Testing browser...")
	pm, err := browser.NewPlaywright(ctx, !cfg.Headed)
	if err != nil {
		return err
	}
	defer pm.Close()

	browserCtx, err := pm.NewContext(cookies)
	if err != nil {
		return err
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return err
	}
	fetcher := browser.NewPageFetcher(page, browser.FetcherOptions{
		NavigationTimeout: cfg.NavigationTimeout,
		WaitTimeout:       cfg.WaitTimeout,
	})

	board := naukri.NewNaukriScraper(cfg, fetcher)
	searchURL := board.SearchURL(*role, 1)
	fmt.Printf("🔍 Fetching %s\n", searchURL)
	html, err := fetcher.Fetch(ctx, scraper.FetchRequest{URL: searchURL, WaitFor: "a.title", Settle: cfg.SettleDelay})
	if err != nil {
		return fmt.Errorf("search page: %w", err)
	}
	links, err := naukri.ExtractLinks(html, searchURL)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %d listing links on page 1\n", len(links))
	if len(links) == 0 {
		return nil
	}

	html, err = fetcher.Fetch(ctx, board.DetailRequest(links[0]))
	if err != nil {
		return fmt.Errorf("listing page: %w", err)
	}
	raw, err := board.Extract(html, links[0])
	if err != nil {
		return err
	}
	raw.Role = *role
	job := normalize.Listing(raw, time.Now())

	fmt.Printf("\n📄 %s @ %s\n", job.Title, job.Company)
	fmt.Printf("   Salary: %q -> %v\n", job.Salary, deref(job.AvgSalary))
	fmt.Printf("   Experience: %q -> %v\n", job.Experience, deref(job.YearsExp))
	fmt.Printf("   Location: %q -> %s\n", job.Location, job.CleanLocation)
	fmt.Printf("   Skills: %s\n", job.CleanSkills)
	fmt.Printf("   Posted: %q -> %v\n", job.PostedText, deref(job.PostedDate))
	fmt.Println("✨ Probe complete!")
	return nil
}

func deref[T any](p *T) any {
	if p == nil {
		return "nil"
	}
	return *p
}
