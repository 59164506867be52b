package ranker

import (
	"sort"
	"strings"
	"time"

	"github.com/umputun/feedpulse/pkg/domain"
)

// Config caps the digest sections. Zero values get defaults in New.
type Config struct {
	TopStories int // global top stories across all content types
	MaxBlog    int
	MaxAudio   int
	MaxVideo   int
	PoolSize   int // ranked candidates considered for the buckets
}

// Engine turns scored items into a digest. Ranking is a pure computation:
// same items and same clock in, same digest out.
type Engine struct {
	cfg Config
}

// New creates a ranking engine.
func New(cfg Config) *Engine {
	if cfg.TopStories <= 0 {
		cfg.TopStories = 3
	}
	if cfg.MaxBlog <= 0 {
		cfg.MaxBlog = 8
	}
	if cfg.MaxAudio <= 0 {
		cfg.MaxAudio = 6
	}
	if cfg.MaxVideo <= 0 {
		cfg.MaxVideo = 6
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 20
	}
	return &Engine{cfg: cfg}
}

// Rank orders items by composite score and assembles the digest. Empty
// input produces a fully-formed empty digest, never an error.
//
// The composite blends three signals:
//
//	recency   = max(0, 5.0 - hoursSincePublish*0.1)
//	boost     = 1.0 when source priority <= 2, else 0
//	composite = significance*0.6 + recency*0.3 + boost*0.1
//
// Ties go to the item published later, then to the lower priority number.
func (e *Engine) Rank(items []domain.ScoredItem, now time.Time) domain.Digest {
	digest := domain.Digest{
		TopStories: []domain.RankedItem{},
		Content: domain.DigestContent{
			Blog:  []domain.RankedItem{},
			Audio: []domain.RankedItem{},
			Video: []domain.RankedItem{},
		},
		Summary: domain.DigestSummary{
			KeyPoints: []string{},
		},
		Timestamp: now,
	}
	if len(items) == 0 {
		return digest
	}

	ranked := make([]domain.RankedItem, 0, len(items))
	for _, item := range items {
		ranked = append(ranked, domain.RankedItem{
			ScoredItem: item,
			RankScore:  composite(item, now),
			Impact:     impactTier(item.Significance),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RankScore != ranked[j].RankScore {
			return ranked[i].RankScore > ranked[j].RankScore
		}
		if !ranked[i].Published.Equal(ranked[j].Published) {
			return ranked[i].Published.After(ranked[j].Published)
		}
		return ranked[i].Priority < ranked[j].Priority
	})

	digest.TopStories = append(digest.TopStories, ranked[:min(e.cfg.TopStories, len(ranked))]...)

	pool := ranked[:min(e.cfg.PoolSize, len(ranked))]
	for _, item := range pool {
		switch item.ContentType {
		case domain.ContentTypeAudio:
			if len(digest.Content.Audio) < e.cfg.MaxAudio {
				digest.Content.Audio = append(digest.Content.Audio, item)
			}
		case domain.ContentTypeVideo:
			if len(digest.Content.Video) < e.cfg.MaxVideo {
				digest.Content.Video = append(digest.Content.Video, item)
			}
		default:
			if len(digest.Content.Blog) < e.cfg.MaxBlog {
				digest.Content.Blog = append(digest.Content.Blog, item)
			}
		}
	}

	digest.Summary = e.summarize(ranked)
	return digest
}

// composite computes the blended ranking score for one item. An unknown
// published time decays all the way to zero recency.
func composite(item domain.ScoredItem, now time.Time) float64 {
	recency := 0.0
	if !item.Published.IsZero() {
		hours := now.Sub(item.Published).Hours()
		recency = 5.0 - hours*0.1
		if recency < 0 {
			recency = 0
		}
	}

	boost := 0.0
	if item.Priority <= 2 {
		boost = 1.0
	}

	return item.Significance*0.6 + recency*0.3 + boost*0.1
}

// impactTier maps significance to the reporting tier.
func impactTier(significance float64) domain.Impact {
	switch {
	case significance >= 7:
		return domain.ImpactHigh
	case significance >= 5:
		return domain.ImpactMedium
	}
	return domain.ImpactLow
}

// summarize builds the digest rollup: headline key points and counters.
func (e *Engine) summarize(ranked []domain.RankedItem) domain.DigestSummary {
	summary := domain.DigestSummary{
		KeyPoints: []string{},
		Metrics:   domain.DigestMetrics{TotalUpdates: len(ranked)},
	}

	for i, item := range ranked {
		if i >= 6 {
			break
		}
		title := item.Title
		if runes := []rune(title); len(runes) > 80 {
			title = string(runes[:80])
		}
		summary.KeyPoints = append(summary.KeyPoints, "• "+title)
	}

	for _, item := range ranked {
		if item.Impact == domain.ImpactHigh {
			summary.Metrics.HighImpact++
		}
		title := strings.ToLower(item.Title)
		if strings.Contains(title, "research") || strings.Contains(title, "study") {
			summary.Metrics.NewResearch++
		}
		if strings.Contains(title, "launch") || strings.Contains(title, "release") || strings.Contains(title, "acquisition") {
			summary.Metrics.IndustryMoves++
		}
	}

	return summary
}
