package digest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedpulse/pkg/domain"
	"github.com/umputun/feedpulse/pkg/ranker"
	"github.com/umputun/feedpulse/pkg/scorer"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/scorer.go -pkg mocks -skip-ensure -fmt goimports . Scorer
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Fetcher retrieves current entries for one source
type Fetcher interface {
	Fetch(ctx context.Context, src domain.Source) []domain.Item
}

// Scorer rates the significance of one item
type Scorer interface {
	Score(ctx context.Context, item domain.Item) (float64, error)
}

// Store persists scored items and serves recent ones back
type Store interface {
	SaveItem(ctx context.Context, item *domain.ScoredItem) (created bool, err error)
	GetRecent(ctx context.Context, window time.Duration, limit int) ([]domain.ScoredItem, error)
}

// Config holds builder configuration
type Config struct {
	Sources    []domain.Source
	MaxWorkers int           // concurrent source fetches, default 5
	Window     time.Duration // how far back Build looks, default 24h
	MaxItems   int           // most items Build considers, default 50
}

// Builder runs the ingest and assembly pipeline: fetch sources, score and
// summarize what came back, persist, and rank stored items into a digest.
// Per-source and per-item failures are logged and skipped, a partial digest
// beats no digest.
type Builder struct {
	fetcher Fetcher
	scorer  Scorer
	store   Store
	ranker  *ranker.Engine
	cfg     Config
}

// NewBuilder creates a digest builder
func NewBuilder(f Fetcher, s Scorer, st Store, rk *ranker.Engine, cfg Config) *Builder {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 5
	}
	if cfg.Window <= 0 {
		cfg.Window = 24 * time.Hour
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 50
	}
	return &Builder{fetcher: f, scorer: s, store: st, ranker: rk, cfg: cfg}
}

// Refresh fetches every enabled source, scores and stores the results.
// Returns the number of items stored for the first time.
func (b *Builder) Refresh(ctx context.Context) (int, error) {
	var createdCount int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.MaxWorkers)

	enabled := 0
	for _, src := range b.cfg.Sources {
		if !src.Enabled {
			continue
		}
		enabled++
		g.Go(func() error {
			for _, item := range b.fetcher.Fetch(gctx, src) {
				scored, err := b.scoreItem(gctx, item)
				if err != nil {
					lgr.Printf("[WARN] score %q from %s: %v", item.Title, src.Name, err)
					continue
				}
				created, err := b.store.SaveItem(gctx, &scored)
				if err != nil {
					lgr.Printf("[WARN] save %q from %s: %v", item.Title, src.Name, err)
					continue
				}
				if created {
					atomic.AddInt64(&createdCount, 1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(atomic.LoadInt64(&createdCount)), fmt.Errorf("refresh sources: %w", err)
	}

	lgr.Printf("[INFO] refresh completed, %d sources, %d new items", enabled, createdCount)
	return int(createdCount), nil
}

// Build assembles a digest from recently stored items. Items that were
// stored without a score get scored here and written back. The returned
// digest is well-formed even on error.
func (b *Builder) Build(ctx context.Context) (domain.Digest, error) {
	items, err := b.store.GetRecent(ctx, b.cfg.Window, b.cfg.MaxItems)
	if err != nil {
		return b.ranker.Rank(nil, time.Now()), fmt.Errorf("load recent items: %w", err)
	}

	for i := range items {
		if items[i].Processed {
			continue
		}
		significance, err := b.scorer.Score(ctx, items[i].Item)
		if err != nil {
			lgr.Printf("[WARN] late scoring %q: %v", items[i].Title, err)
			continue
		}
		items[i].Significance = significance
		items[i].Summary = scorer.Summarize(items[i].Content)
		items[i].Processed = true
		if _, err := b.store.SaveItem(ctx, &items[i]); err != nil {
			lgr.Printf("[WARN] persist late score %q: %v", items[i].Title, err)
		}
	}

	return b.ranker.Rank(items, time.Now()), nil
}

func (b *Builder) scoreItem(ctx context.Context, item domain.Item) (domain.ScoredItem, error) {
	significance, err := b.scorer.Score(ctx, item)
	if err != nil {
		return domain.ScoredItem{}, err
	}
	return domain.ScoredItem{
		Item:         item,
		Significance: significance,
		Summary:      scorer.Summarize(item.Content),
		Processed:    true,
	}, nil
}
