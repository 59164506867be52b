package domain

import "time"

// Item represents a single entry pulled from a feed source, cleaned up
// but not yet scored. Priority and ContentType are copied from the source
// so downstream stages need no source lookup.
type Item struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Published   time.Time `json:"published"` // zero value means the feed had no usable date
	ContentType string    `json:"content_type"`
	Priority    int       `json:"priority"`
}

// ScoredItem is an item with significance attached. This is the unit of
// storage; the URL hash keys deduplication.
type ScoredItem struct {
	Item
	Significance float64   `json:"significance"`
	Summary      string    `json:"summary"`
	Processed    bool      `json:"processed"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// Impact buckets a ranked item by its significance score.
type Impact string

// impact levels, derived from significance at ranking time
const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// RankedItem is a scored item with its digest-time composite rank.
// Rank scores are recomputed on every digest build and never persisted.
type RankedItem struct {
	ScoredItem
	RankScore float64 `json:"rank_score"`
	Impact    Impact  `json:"impact"`
}
