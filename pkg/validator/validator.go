package validator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedpulse/pkg/domain"
)

// Opts tunes a validation batch. Zero values get defaults.
type Opts struct {
	Timeout       time.Duration // per-probe budget, default 10s
	MaxConcurrent int           // parallel probes, default 5
	UserAgent     string
}

// Validator probes feed sources and reports per-source diagnostics.
// Probe outcomes are statuses, never errors: a dead source is data, not
// a failure of the validator itself.
type Validator struct {
	client *http.Client
	nowFn  func() time.Time
}

// New creates a validator with a shared HTTP client. Per-probe timeouts
// come from Opts, not from the client.
func New() *Validator {
	return &Validator{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		nowFn: time.Now,
	}
}

// ValidateBatch probes every source with bounded concurrency and returns
// one result per source, in input order. The summary is computed only
// after all probes have joined.
func (v *Validator) ValidateBatch(ctx context.Context, sources []domain.Source, opts Opts) domain.ValidationReport {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 5
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "feedpulse-validator/1.0"
	}

	started := v.nowFn()
	results := make([]domain.ValidationResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrent)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = v.probe(gctx, src, opts)
			return nil
		})
	}
	_ = g.Wait() // probes report through results, never through errors

	return domain.ValidationReport{
		Results: results,
		Summary: v.summarize(results, v.nowFn().Sub(started)),
	}
}

// probe checks one source end to end: request, parse, issue detection.
func (v *Validator) probe(ctx context.Context, src domain.Source, opts Opts) domain.ValidationResult {
	result := domain.ValidationResult{
		Name:        src.Name,
		URL:         src.URL,
		ContentType: src.ContentType,
		Priority:    src.Priority,
	}

	if src.URL == "" {
		// missing URL is a configuration defect, surfaced not skipped
		result.Status = domain.ValidationError
		result.Message = "No feed URL provided"
		return result
	}

	probeCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, src.URL, http.NoBody)
	if err != nil {
		result.Status = domain.ValidationError
		result.Message = fmt.Sprintf("Request failed: %v", err)
		return result
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	started := v.nowFn()
	resp, err := v.client.Do(req)
	result.ResponseTime = v.nowFn().Sub(started).Seconds()

	if err != nil {
		result.Status = domain.ValidationError
		if errors.Is(err, context.DeadlineExceeded) {
			result.Message = fmt.Sprintf("Timeout after %gs", opts.Timeout.Seconds())
			result.ResponseTime = opts.Timeout.Seconds()
			return result
		}
		result.Message = fmt.Sprintf("Request failed: %v", err)
		return result
	}
	defer resp.Body.Close() //nolint:errcheck // nothing to do with close error

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		result.Status = domain.ValidationError
		result.Message = fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		return result
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			result.Status = domain.ValidationError
			result.Message = fmt.Sprintf("Timeout after %gs", opts.Timeout.Seconds())
			result.ResponseTime = opts.Timeout.Seconds()
			return result
		}
		result.Status = domain.ValidationWarning
		result.Message = fmt.Sprintf("Feed has parsing issues: %v", err)
		return result
	}

	result.Status = domain.ValidationSuccess
	result.Message = "Feed is working correctly"
	result.FeedTitle = feed.Title
	result.EntriesCount = len(feed.Items)
	result.LastUpdated = newestEntry(feed)
	for i, entry := range feed.Items {
		if i >= 3 || entry == nil {
			break
		}
		result.SampleTitles = append(result.SampleTitles, entry.Title)
	}

	v.applyIssues(&result)
	return result
}

// applyIssues flags feed quality problems and downgrades a success to a
// warning. A warning or error never gets upgraded.
func (v *Validator) applyIssues(result *domain.ValidationResult) {
	var issues []string

	switch {
	case result.EntriesCount == 0:
		issues = append(issues, "No entries found")
	case result.EntriesCount < 5:
		issues = append(issues, fmt.Sprintf("Only %d entries", result.EntriesCount))
	}

	if result.LastUpdated != nil {
		if age := v.nowFn().Sub(*result.LastUpdated); age > 30*24*time.Hour {
			issues = append(issues, fmt.Sprintf("Last update %d days ago", int(age.Hours()/24)))
		}
	}

	if len(issues) == 0 {
		return
	}

	result.Issues = issues
	if result.Status == domain.ValidationSuccess {
		result.Status = domain.ValidationWarning
		result.Message += fmt.Sprintf(" (Issues: %s)", strings.Join(issues, ", "))
	}
}

// newestEntry finds the most recent published/updated timestamp.
func newestEntry(feed *gofeed.Feed) *time.Time {
	var newest *time.Time
	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}
		ts := entry.PublishedParsed
		if ts == nil {
			ts = entry.UpdatedParsed
		}
		if ts == nil {
			continue
		}
		if newest == nil || ts.After(*newest) {
			newest = ts
		}
	}
	return newest
}

// summarize folds probe results into batch statistics. Success rate
// counts warnings as usable; average response time skips errored probes.
func (v *Validator) summarize(results []domain.ValidationResult, elapsed time.Duration) domain.BatchSummary {
	summary := domain.BatchSummary{
		TotalSources:   len(results),
		ContentTypes:   map[string]int{},
		Priorities:     map[int]int{},
		ValidationTime: round2(elapsed.Seconds()),
	}

	var timeSum float64
	var timed int
	for _, r := range results {
		switch r.Status {
		case domain.ValidationSuccess:
			summary.Successful++
		case domain.ValidationWarning:
			summary.Warnings++
		case domain.ValidationError:
			summary.Errors++
		}
		if r.Status != domain.ValidationError {
			timeSum += r.ResponseTime
			timed++
		}
		summary.TotalEntries += r.EntriesCount
		if r.EntriesCount > 0 {
			summary.SourcesWithEntries++
		}
		summary.ContentTypes[r.ContentType]++
		summary.Priorities[r.Priority]++
	}

	if summary.TotalSources > 0 {
		summary.SuccessRate = round1(float64(summary.Successful+summary.Warnings) / float64(summary.TotalSources) * 100)
	}
	if timed > 0 {
		summary.AvgResponseTime = round2(timeSum / float64(timed))
	}
	return summary
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
