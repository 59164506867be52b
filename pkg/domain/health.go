package domain

import "time"

// HealthSnapshot is one observation of one source, kept in the rolling
// 24h history window.
type HealthSnapshot struct {
	Timestamp    time.Time        `json:"timestamp"`
	Status       ValidationStatus `json:"status"`
	ResponseTime float64          `json:"response_time"`
	EntriesCount int              `json:"entries_count"`
}

// ProblemSource identifies a source that errored or returned no entries.
type ProblemSource struct {
	Name    string           `json:"name"`
	Status  ValidationStatus `json:"status"`
	Message string           `json:"message"`
}

// SlowSource identifies a source responding slower than the threshold.
type SlowSource struct {
	Name         string  `json:"name"`
	ResponseTime float64 `json:"response_time"`
}

// StaleSource identifies a source whose newest entry is too old.
type StaleSource struct {
	Name    string `json:"name"`
	DaysOld int    `json:"days_old"`
}

// HealthReport is the aggregate view of the latest health check.
// Detail lists are capped; counts are not.
type HealthReport struct {
	TotalSources   int             `json:"total_sources"`
	Problematic    int             `json:"problematic"`
	Slow           int             `json:"slow"`
	Stale          int             `json:"stale"`
	ProblemSources []ProblemSource `json:"problem_sources"`
	SlowSources    []SlowSource    `json:"slow_sources"`
	StaleSources   []StaleSource   `json:"stale_sources"`
	OverallScore   float64         `json:"overall_score"` // 0..100
	CheckedAt      time.Time       `json:"checked_at"`
}

// HealthCheck is the full outcome of a single monitor pass: the aggregate
// report, the per-source probe results it was built from, and the rolling
// history window after this pass was folded in.
type HealthCheck struct {
	Report  HealthReport                `json:"report"`
	Results []ValidationResult          `json:"results"`
	History map[string][]HealthSnapshot `json:"history"`
}
