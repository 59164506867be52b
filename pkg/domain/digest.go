package domain

import "time"

// Digest is a ranked snapshot of recent content, grouped by content type.
// A digest built from no items is still fully formed: empty slices, zero
// metrics, valid timestamp.
type Digest struct {
	TopStories []RankedItem  `json:"top_stories"`
	Content    DigestContent `json:"content"`
	Summary    DigestSummary `json:"summary"`
	Timestamp  time.Time     `json:"timestamp"`
}

// DigestContent holds per-content-type buckets, each capped independently.
type DigestContent struct {
	Blog  []RankedItem `json:"blog"`
	Audio []RankedItem `json:"audio"`
	Video []RankedItem `json:"video"`
}

// DigestSummary is the human-oriented rollup attached to every digest.
type DigestSummary struct {
	KeyPoints []string      `json:"key_points"`
	Metrics   DigestMetrics `json:"metrics"`
}

// DigestMetrics counts what went into the digest.
type DigestMetrics struct {
	TotalUpdates  int `json:"total_updates"`
	HighImpact    int `json:"high_impact"`
	NewResearch   int `json:"new_research"`
	IndustryMoves int `json:"industry_moves"`
}
