package fetcher

import (
	"context"
	"fmt"
	"html"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/feedpulse/pkg/domain"
)

// acceptLanguages rotated per request, some providers throttle uniform clients
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
}

//go:generate moq -out mocks/enricher.go -pkg mocks -skip-ensure -fmt goimports . Enricher

// Enricher upgrades an item body with full article text.
type Enricher interface {
	Extract(ctx context.Context, link string) (string, error)
}

// Config bundles fetcher tuning knobs. Zero values get defaults in New.
type Config struct {
	Timeout    time.Duration // per-request HTTP timeout
	UserAgent  string
	CacheTTL   time.Duration
	MaxPerFeed int // entries taken from one feed
	MinBodyLen int // entries with shorter cleaned bodies are skipped
	MaxBodyLen int // cleaned bodies are capped at this many characters
}

// Fetcher pulls items from feed sources through a shared cache and rate
// limiter. Fetch never returns an error: every failure path logs and
// yields an empty list, so one bad source cannot disturb a batch.
type Fetcher struct {
	client   *http.Client
	cache    Cache
	limiter  *RateLimiter
	enricher Enricher
	stripper *bluemonday.Policy
	cfg      Config
}

// New creates a fetcher. Enricher may be nil to disable full-text lookup.
func New(cfg Config, cache Cache, limiter *RateLimiter, enricher Enricher) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "feedpulse/1.0"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.MaxPerFeed <= 0 {
		cfg.MaxPerFeed = 10
	}
	if cfg.MinBodyLen <= 0 {
		cfg.MinBodyLen = 50
	}
	if cfg.MaxBodyLen <= 0 {
		cfg.MaxBodyLen = 2000
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:    cache,
		limiter:  limiter,
		enricher: enricher,
		stripper: bluemonday.StrictPolicy(),
		cfg:      cfg,
	}
}

// Fetch returns items for the source, from cache when fresh. A cache hit
// makes no network request and consumes no rate limit slot.
func (f *Fetcher) Fetch(ctx context.Context, src domain.Source) []domain.Item {
	if items, ok := f.cache.Get(ctx, src.Name); ok {
		log.Printf("[DEBUG] cache hit for %s, %d items", src.Name, len(items))
		return items
	}

	if err := f.limiter.Wait(ctx); err != nil {
		log.Printf("[WARN] rate limit wait for %s interrupted: %v", src.Name, err)
		return []domain.Item{}
	}

	feed, err := f.download(ctx, src.URL)
	if err != nil {
		log.Printf("[WARN] failed to fetch %s: %v", src.Name, err)
		return []domain.Item{}
	}

	items := f.convert(ctx, src, feed)
	f.cache.Set(ctx, src.Name, items, f.cfg.CacheTTL)
	log.Printf("[INFO] fetched %d items from %s", len(items), src.Name)
	return items
}

// download retrieves and parses the feed at url.
func (f *Fetcher) download(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // not security sensitive

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // nothing to do with close error

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// convert maps feed entries to domain items, dropping the ones that fail
// cleanup. A bad entry never aborts its siblings.
func (f *Fetcher) convert(ctx context.Context, src domain.Source, feed *gofeed.Feed) []domain.Item {
	items := make([]domain.Item, 0, f.cfg.MaxPerFeed)
	for _, entry := range feed.Items {
		if len(items) >= f.cfg.MaxPerFeed {
			break
		}
		if entry == nil {
			continue
		}
		item, ok := f.convertEntry(ctx, src, entry)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// convertEntry builds one domain item from a feed entry. Entries whose
// cleaned body stays under the minimum length are skipped.
func (f *Fetcher) convertEntry(ctx context.Context, src domain.Source, entry *gofeed.Item) (domain.Item, bool) {
	body := entry.Content
	if body == "" {
		body = entry.Description
	}
	body = f.cleanBody(body)

	if f.enricher != nil && len([]rune(body)) < f.cfg.MinBodyLen && entry.Link != "" {
		full, err := f.enricher.Extract(ctx, entry.Link)
		if err != nil {
			log.Printf("[WARN] content extraction failed for %s: %v", entry.Link, err)
		} else if full != "" {
			body = f.cleanBody(full)
		}
	}

	if len([]rune(body)) < f.cfg.MinBodyLen {
		return domain.Item{}, false
	}

	item := domain.Item{
		Source:      src.Name,
		Title:       strings.TrimSpace(entry.Title),
		Content:     body,
		URL:         entry.Link,
		ContentType: src.ContentType,
		Priority:    src.Priority,
	}

	if entry.PublishedParsed != nil {
		item.Published = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		item.Published = *entry.UpdatedParsed
	}

	return item, true
}

// cleanBody strips markup, unescapes entities, collapses whitespace and
// caps the length.
func (f *Fetcher) cleanBody(s string) string {
	s = f.stripper.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > f.cfg.MaxBodyLen {
		s = string(runes[:f.cfg.MaxBodyLen])
	}
	return s
}
