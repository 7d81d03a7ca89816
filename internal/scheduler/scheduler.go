// Package scheduler re-runs the scrape on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled scrape. Its error is logged, never fatal.
type Job func(ctx context.Context) error

// Scheduler wraps robfig/cron. Runs never overlap: a tick that fires while
// the previous scrape is still going is skipped, since one browser page
// serves the whole run.
type Scheduler struct {
	cron *cron.Cron
	job  Job
	spec string // cron spec, e.g. "@every 6h" or "0 7 * * *"
	wg   sync.WaitGroup
}

func New(spec string, job Job) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		job:  job,
		spec: spec,
	}
}

// Validate reports whether spec is a standard cron expression or descriptor.
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Start registers the job and starts the scheduler. One scrape also runs
// immediately so the store is filled without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := Validate(s.spec); err != nil {
		return err
	}
	id, err := s.cron.AddFunc(s.spec, func() {
		s.runScrape(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	// The immediate run goes through the same wrapped entry so it counts
	// for SkipIfStillRunning.
	entry := s.cron.Entry(id)
	s.cron.Start()
	log.Printf("⏰ Scheduler started, spec: %s", s.spec)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		entry.WrappedJob.Run()
	}()
	return nil
}

// Stop halts the schedule and waits for a running scrape to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Println("⏰ Scheduler stopped")
}

func (s *Scheduler) runScrape(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	log.Println("⏰ Scheduled scrape started")
	if err := s.job(ctx); err != nil {
		log.Printf("❌ Scheduled scrape failed: %v", err)
		return
	}
	log.Println("⏰ Scheduled scrape complete")
}
