package validator

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/umputun/feedpulse/pkg/domain"
)

// MonitorConfig tunes health check thresholds. Zero values get defaults.
type MonitorConfig struct {
	Timeout       time.Duration // probe budget, default 15s
	MaxConcurrent int           // parallel probes, default 3
	SlowThreshold float64       // seconds before a source counts as slow, default 5
	StaleAfter    time.Duration // newest-entry age before a source counts as stale, default 7 days
	HistoryWindow time.Duration // snapshot retention, default 24h
	MaxDetails    int           // detail rows per report category, default 5
}

// Monitor tracks the health of a fixed source set over a rolling window.
// All state changes happen under one mutex, so overlapping timer runs
// serialize instead of racing.
type Monitor struct {
	validator *Validator
	sources   []domain.Source
	cfg       MonitorConfig

	mu        sync.Mutex
	history   map[string][]domain.HealthSnapshot
	lastCheck *domain.HealthCheck
	nowFn     func() time.Time
}

// NewMonitor creates a monitor over the given sources.
func NewMonitor(v *Validator, sources []domain.Source, cfg MonitorConfig) *Monitor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 3
	}
	if cfg.SlowThreshold <= 0 {
		cfg.SlowThreshold = 5.0
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 7 * 24 * time.Hour
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 24 * time.Hour
	}
	if cfg.MaxDetails <= 0 {
		cfg.MaxDetails = 5
	}

	return &Monitor{
		validator: v,
		sources:   sources,
		cfg:       cfg,
		history:   make(map[string][]domain.HealthSnapshot),
		nowFn:     time.Now,
	}
}

// RunHealthCheck validates all sources once, folds the results into the
// rolling history and produces the aggregate report.
func (m *Monitor) RunHealthCheck(ctx context.Context) domain.HealthCheck {
	report := m.validator.ValidateBatch(ctx, m.sources, Opts{
		Timeout:       m.cfg.Timeout,
		MaxConcurrent: m.cfg.MaxConcurrent,
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFn()
	for _, r := range report.Results {
		m.history[r.Name] = append(m.history[r.Name], domain.HealthSnapshot{
			Timestamp:    now,
			Status:       r.Status,
			ResponseTime: r.ResponseTime,
			EntriesCount: r.EntriesCount,
		})
		m.history[r.Name] = pruneSnapshots(m.history[r.Name], now.Add(-m.cfg.HistoryWindow))
	}

	check := domain.HealthCheck{
		Report:  m.buildReport(report.Results, now),
		Results: report.Results,
		History: m.historyCopy(),
	}
	m.lastCheck = &check

	log.Printf("[INFO] health check done: score %.1f, %d problematic, %d slow, %d stale",
		check.Report.OverallScore, check.Report.Problematic, check.Report.Slow, check.Report.Stale)
	return check
}

// LastCheck returns the most recent health check without forcing a probe,
// and false when no check has run yet.
func (m *Monitor) LastCheck() (domain.HealthCheck, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastCheck == nil {
		return domain.HealthCheck{}, false
	}
	return *m.lastCheck, true
}

// History returns a copy of the retained snapshots for one source.
func (m *Monitor) History(name string) []domain.HealthSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshots := make([]domain.HealthSnapshot, len(m.history[name]))
	copy(snapshots, m.history[name])
	return snapshots
}

// buildReport derives the aggregate view from one batch of results.
// Caller must hold the lock.
func (m *Monitor) buildReport(results []domain.ValidationResult, now time.Time) domain.HealthReport {
	report := domain.HealthReport{
		TotalSources:   len(results),
		ProblemSources: []domain.ProblemSource{},
		SlowSources:    []domain.SlowSource{},
		StaleSources:   []domain.StaleSource{},
		CheckedAt:      now,
	}

	var success, warning, slow, empty int
	for _, r := range results {
		switch r.Status {
		case domain.ValidationSuccess:
			success++
		case domain.ValidationWarning:
			warning++
		}

		if r.Status == domain.ValidationError || r.EntriesCount == 0 {
			report.Problematic++
			if len(report.ProblemSources) < m.cfg.MaxDetails {
				report.ProblemSources = append(report.ProblemSources, domain.ProblemSource{
					Name:    r.Name,
					Status:  r.Status,
					Message: r.Message,
				})
			}
		}

		if r.ResponseTime > m.cfg.SlowThreshold {
			report.Slow++
			slow++
			if len(report.SlowSources) < m.cfg.MaxDetails {
				report.SlowSources = append(report.SlowSources, domain.SlowSource{
					Name:         r.Name,
					ResponseTime: r.ResponseTime,
				})
			}
		}

		if r.LastUpdated != nil && now.Sub(*r.LastUpdated) > m.cfg.StaleAfter {
			report.Stale++
			if len(report.StaleSources) < m.cfg.MaxDetails {
				report.StaleSources = append(report.StaleSources, domain.StaleSource{
					Name:    r.Name,
					DaysOld: int(now.Sub(*r.LastUpdated).Hours() / 24),
				})
			}
		}

		if r.EntriesCount == 0 {
			empty++
		}
	}

	report.OverallScore = healthScore(success, warning, slow, empty, len(results))
	return report
}

// healthScore computes the aggregate 0..100 score:
// (success + warning*0.5)/total*100, minus (slow/total)*10 and
// (empty/total)*15, floored at zero.
func healthScore(success, warning, slow, empty, total int) float64 {
	if total == 0 {
		return 0
	}
	score := (float64(success) + float64(warning)*0.5) / float64(total) * 100
	score -= float64(slow) / float64(total) * 10
	score -= float64(empty) / float64(total) * 15
	if score < 0 {
		return 0
	}
	return round1(score)
}

// pruneSnapshots drops snapshots at or before the cutoff.
func pruneSnapshots(snapshots []domain.HealthSnapshot, cutoff time.Time) []domain.HealthSnapshot {
	idx := 0
	for idx < len(snapshots) && !snapshots[idx].Timestamp.After(cutoff) {
		idx++
	}
	if idx == 0 {
		return snapshots
	}
	return append(snapshots[:0], snapshots[idx:]...)
}

// historyCopy deep-copies the history map. Caller must hold the lock.
func (m *Monitor) historyCopy() map[string][]domain.HealthSnapshot {
	history := make(map[string][]domain.HealthSnapshot, len(m.history))
	for name, snapshots := range m.history {
		cp := make([]domain.HealthSnapshot, len(snapshots))
		copy(cp, snapshots)
		history[name] = cp
	}
	return history
}
