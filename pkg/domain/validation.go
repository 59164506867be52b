package domain

import "time"

// ValidationStatus is the terminal state of a single source probe.
// Operational failures surface as statuses, not errors.
type ValidationStatus string

// probe outcomes
const (
	ValidationSuccess ValidationStatus = "success"
	ValidationWarning ValidationStatus = "warning"
	ValidationError   ValidationStatus = "error"
)

// ValidationResult describes the outcome of probing one source. Immutable
// once produced; issues found after a successful fetch downgrade the status
// to warning, never upgrade it.
type ValidationResult struct {
	Name         string           `json:"name"`
	URL          string           `json:"url"`
	Status       ValidationStatus `json:"status"`
	Message      string           `json:"message"`
	ResponseTime float64          `json:"response_time"` // seconds
	EntriesCount int              `json:"entries_count"`
	LastUpdated  *time.Time       `json:"last_updated,omitempty"`
	FeedTitle    string           `json:"feed_title,omitempty"`
	ContentType  string           `json:"content_type"`
	Priority     int              `json:"priority"`
	Issues       []string         `json:"issues,omitempty"`
	SampleTitles []string         `json:"sample_titles,omitempty"`
}

// BatchSummary aggregates a whole validation run. Success rate counts
// warnings as usable sources; average response time skips errored probes.
type BatchSummary struct {
	TotalSources       int            `json:"total_sources"`
	Successful         int            `json:"successful"`
	Warnings           int            `json:"warnings"`
	Errors             int            `json:"errors"`
	SuccessRate        float64        `json:"success_rate"`
	AvgResponseTime    float64        `json:"avg_response_time"`
	TotalEntries       int            `json:"total_entries"`
	SourcesWithEntries int            `json:"sources_with_entries"`
	ContentTypes       map[string]int `json:"content_types"`
	Priorities         map[int]int    `json:"priorities"`
	ValidationTime     float64        `json:"validation_time"` // seconds, wall clock
}

// ValidationReport pairs per-source results with the batch summary.
// Exactly one result per requested source, in input order.
type ValidationReport struct {
	Results []ValidationResult `json:"results"`
	Summary BatchSummary       `json:"summary"`
}
