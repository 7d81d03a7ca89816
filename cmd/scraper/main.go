package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"

	"go-jobmarket-scraper/internal/browser"
	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/database"
	"go-jobmarket-scraper/internal/dedup"
	"go-jobmarket-scraper/internal/runner"
	"go-jobmarket-scraper/internal/scheduler"
	"go-jobmarket-scraper/internal/scraper/naukri"
	"go-jobmarket-scraper/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func run() error {
	maxPages := flag.Int("max-pages", 0, "search result pages per role (default from config)")
	schedule := flag.String("schedule", "", `cron spec to keep re-running, e.g. "@every 6h" (default from config)`)
	noProgress := flag.Bool("no-progress", false, "disable the progress bar")
	flag.Parse()

	//load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *maxPages > 0 {
		cfg.MaxPages = *maxPages
	}
	if *schedule != "" {
		cfg.Schedule = *schedule
	}
	log.Printf("🔧 Config loaded. Roles: %d, max pages: %d", len(cfg.Roles), cfg.MaxPages)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	var bot *telegram.Bot
	if cfg.TelegramEnabled() {
		bot, err = telegram.NewBot(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			log.Println("🤖 Telegram Bot initialized.")
		}
	}

	job := func(ctx context.Context) error {
		summary, err := scrapeOnce(ctx, cfg, store, !*noProgress)
		if bot != nil {
			if err != nil && summary == nil {
				if sendErr := bot.SendError(err); sendErr != nil {
					log.Printf("⚠️ Failed to send error to Telegram: %v", sendErr)
				}
			} else if summary != nil {
				if sendErr := bot.SendSummary(naukri.BoardName, summary); sendErr != nil {
					log.Printf("⚠️ Failed to send summary to Telegram: %v", sendErr)
				}
			}
		}
		return err
	}

	if cfg.Schedule == "" {
		err := job(ctx)
		if errors.Is(err, context.Canceled) {
			log.Println("🛑 Interrupted, partial results were saved.")
			return nil
		}
		return err
	}

	sched := scheduler.New(cfg.Schedule, job)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	log.Println("🛑 Shutting down...")
	sched.Stop()
	return nil
}

// scrapeOnce runs one full scrape with its own browser. A nil Summary with
// an error means setup failed; listing and page failures only show up in
// the Summary.
func scrapeOnce(ctx context.Context, cfg *config.Config, store database.Store, progress bool) (*runner.Summary, error) {
	log.Println("🚀 Starting job market scrape...")

	//init playwright manager
	pwManager, err := browser.NewPlaywright(ctx, !cfg.Headed)
	if err != nil {
		return nil, fmt.Errorf("init playwright: %w", err)
	}
	defer pwManager.Close()

	//load cookies; a fresh session works too, it is just blocked sooner
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-naukri.json")
	cookies, err := browser.LoadCookies(cookieFile)
	if err != nil {
		log.Printf("⚠️ Could not load naukri cookies: %v. Continuing.", err)
	} else {
		log.Printf("🍪 Loaded naukri cookies (%d)", len(cookies))
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	log.Println("✅ Browser initialized successfully!")

	opts := browser.FetcherOptions{
		NavigationTimeout: cfg.NavigationTimeout,
		WaitTimeout:       cfg.WaitTimeout,
		Humanize:          cfg.Humanize,
	}
	if cfg.DebugScreenshots {
		shots, err := browser.NewScreenshotDebugger(filepath.Join(cfg.CachePath, "screenshots"))
		if err != nil {
			log.Printf("⚠️ Screenshots disabled: %v", err)
		} else {
			opts.Screenshots = shots
		}
	}
	fetcher := browser.NewPageFetcher(page, opts)

	r := runner.New(naukri.NewNaukriScraper(cfg, fetcher), fetcher, store, cfg.ListingDelay)
	if cfg.SkipSeen {
		r.Seen = dedup.NewSeenCache(cfg.CachePath)
	}

	if progress {
		bar := pb.New(0)
		bar.SetTemplateString(`{{counters . }} {{bar . }} {{percent . }} {{etime . }}`)
		bar.Start()
		defer bar.Finish()
		r.OnDiscover = func(role string, links int) { bar.AddTotal(int64(links)) }
		r.OnResult = func(runner.Result) { bar.Increment() }
	}

	summary, err := r.Run(ctx, cfg.Roles)
	if summary != nil {
		logSummary(summary)
	}
	return summary, err
}

func logSummary(s *runner.Summary) {
	log.Printf("\n📦 Run %s finished in %s", s.RunID, s.Duration().Round(time.Second))
	for _, rs := range s.Roles {
		log.Printf("  %-28s found %3d | new %3d | dup %3d | skipped %3d | failed %3d",
			rs.Role, rs.Discovered, rs.Inserted, rs.Duplicates, rs.Skipped, rs.Failed)
	}
	log.Printf("✅ Total: %d new, %d duplicates, %d skipped, %d failed of %d found",
		s.Total.Inserted, s.Total.Duplicates, s.Total.Skipped, s.Total.Failed, s.Total.Discovered)
	if n := len(s.PageErrors); n > 0 {
		log.Printf("⚠️ %d search pages failed", n)
	}
}
