package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go-jobmarket-scraper/internal/config"
	"go-jobmarket-scraper/internal/database"
	"go-jobmarket-scraper/internal/export"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func run() error {
	format := flag.String("format", "csv", "csv or xlsx")
	out := flag.String("out", "", "output file (default <export_dir>/jobs.<format>)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	write := export.WriteCSV
	switch strings.ToLower(*format) {
	case "csv":
	case "xlsx":
		write = export.WriteXLSX
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	path := *out
	if path == "" {
		path = filepath.Join(cfg.ExportDir, "jobs."+strings.ToLower(*format))
	}

	ctx := context.Background()
	store, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	jobs, err := store.List(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, jobs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("✅ Exported %d jobs to %s", len(jobs), path)
	return nil
}
