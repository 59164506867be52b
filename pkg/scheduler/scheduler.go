package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"

	"github.com/umputun/feedpulse/pkg/domain"
)

//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester
//go:generate moq -out mocks/health_checker.go -pkg mocks -skip-ensure -fmt goimports . HealthChecker
//go:generate moq -out mocks/retention.go -pkg mocks -skip-ensure -fmt goimports . Retention

// Ingester pulls fresh items from every source into the store
type Ingester interface {
	Refresh(ctx context.Context) (int, error)
}

// HealthChecker probes all sources and updates the rolling report
type HealthChecker interface {
	RunHealthCheck(ctx context.Context) domain.HealthCheck
}

// Retention prunes stored items past their useful age
type Retention interface {
	DeleteOlderThan(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Config holds scheduler configuration, cron specs accept both the
// classic 5-field form and @every intervals
type Config struct {
	IngestSpec    string        // default "@every 8h"
	HealthSpec    string        // default "@every 1h"
	RetentionSpec string        // default "@every 24h"
	RetainFor     time.Duration // default 7 days
}

// Scheduler drives periodic ingestion, health checks and retention.
// The first ingest and health pass run immediately on Start so the API
// serves data before the first scheduled tick.
type Scheduler struct {
	ingester  Ingester
	health    HealthChecker
	retention Retention
	cfg       Config

	cron   *cron.Cron
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler over the given workers
func New(ingester Ingester, health HealthChecker, retention Retention, cfg Config) *Scheduler {
	if cfg.IngestSpec == "" {
		cfg.IngestSpec = "@every 8h"
	}
	if cfg.HealthSpec == "" {
		cfg.HealthSpec = "@every 1h"
	}
	if cfg.RetentionSpec == "" {
		cfg.RetentionSpec = "@every 24h"
	}
	if cfg.RetainFor <= 0 {
		cfg.RetainFor = 7 * 24 * time.Hour
	}

	return &Scheduler{
		ingester:  ingester,
		health:    health,
		retention: retention,
		cfg:       cfg,
		cron:      cron.New(),
	}
}

// Start registers the jobs and launches the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{"ingest", s.cfg.IngestSpec, func() { s.runIngest(ctx) }},
		{"health", s.cfg.HealthSpec, func() { s.runHealth(ctx) }},
		{"retention", s.cfg.RetentionSpec, func() { s.runRetention(ctx) }},
	}
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.run); err != nil {
			return fmt.Errorf("schedule %s job %q: %w", job.name, job.spec, err)
		}
	}

	s.cron.Start()

	// first pass right away, the API should not wait out a full tick
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runIngest(ctx)
		s.runHealth(ctx)
	}()

	lgr.Printf("[INFO] scheduler started, ingest %q, health %q, retention %q",
		s.cfg.IngestSpec, s.cfg.HealthSpec, s.cfg.RetentionSpec)
	return nil
}

// Stop cancels running jobs and waits for the cron loop to drain
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunIngestNow triggers an ingest pass outside the schedule
func (s *Scheduler) RunIngestNow(ctx context.Context) (int, error) {
	return s.ingester.Refresh(ctx)
}

// RunHealthNow triggers a health check outside the schedule
func (s *Scheduler) RunHealthNow(ctx context.Context) domain.HealthCheck {
	return s.health.RunHealthCheck(ctx)
}

func (s *Scheduler) runIngest(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	added, err := s.ingester.Refresh(ctx)
	if err != nil {
		lgr.Printf("[ERROR] ingest run failed: %v", err)
		return
	}
	lgr.Printf("[INFO] ingest run completed, %d new items", added)
}

func (s *Scheduler) runHealth(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	check := s.health.RunHealthCheck(ctx)
	lgr.Printf("[INFO] health run completed, score %.1f", check.Report.OverallScore)
}

func (s *Scheduler) runRetention(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	removed, err := s.retention.DeleteOlderThan(ctx, s.cfg.RetainFor)
	if err != nil {
		lgr.Printf("[ERROR] retention run failed: %v", err)
		return
	}
	if removed > 0 {
		lgr.Printf("[INFO] retention removed %d stale items", removed)
	}
}
