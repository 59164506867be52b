package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/feedpulse/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feeds and external links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedpulse.db?cache=shared&mode=rwc,description=SQLite connection string"`
		MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=1h,description=Connection maximum lifetime"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Sources []Source `yaml:"sources" json:"sources" jsonschema:"description=Feed sources to aggregate"`

	Fetch struct {
		Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Per-request HTTP timeout"`
		UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for feed requests"`
		CacheTTL   time.Duration `yaml:"cache_ttl" json:"cache_ttl" jsonschema:"default=1h,description=How long fetched feeds stay cached"`
		MaxPerFeed int           `yaml:"max_per_feed" json:"max_per_feed" jsonschema:"default=10,description=Entries taken from one feed"`
		MinBodyLen int           `yaml:"min_body_len" json:"min_body_len" jsonschema:"default=50,description=Entries with shorter cleaned bodies are skipped"`
		MaxBodyLen int           `yaml:"max_body_len" json:"max_body_len" jsonschema:"default=2000,description=Cleaned bodies are capped at this many characters"`

		RateLimit struct {
			MaxRequests int           `yaml:"max_requests" json:"max_requests" jsonschema:"default=30,description=Requests allowed per window"`
			Window      time.Duration `yaml:"window" json:"window" jsonschema:"default=60s,description=Rate limit window"`
		} `yaml:"rate_limit" json:"rate_limit" jsonschema:"description=Outbound request rate limit"`
	} `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Cache struct {
		Backend string `yaml:"backend" json:"backend" jsonschema:"default=memory,enum=memory,enum=redis,description=Cache backend"`
		Redis   struct {
			Addr     string `yaml:"addr" json:"addr" jsonschema:"default=localhost:6379,description=Redis server address"`
			Password string `yaml:"password" json:"password" jsonschema:"description=Redis password (can use environment variable)"`
			DB       int    `yaml:"db" json:"db" jsonschema:"default=0,description=Redis database number"`
		} `yaml:"redis" json:"redis" jsonschema:"description=Redis settings, used when backend is redis"`
	} `yaml:"cache" json:"cache" jsonschema:"description=Feed cache configuration"`

	Scoring ScoringConfig `yaml:"scoring" json:"scoring" jsonschema:"description=Significance scoring configuration"`

	Ranking struct {
		TopStories int `yaml:"top_stories" json:"top_stories" jsonschema:"default=3,description=Top stories across all content types"`
		MaxBlog    int `yaml:"max_blog" json:"max_blog" jsonschema:"default=8,description=Blog entries per digest"`
		MaxAudio   int `yaml:"max_audio" json:"max_audio" jsonschema:"default=6,description=Audio entries per digest"`
		MaxVideo   int `yaml:"max_video" json:"max_video" jsonschema:"default=6,description=Video entries per digest"`
		PoolSize   int `yaml:"pool_size" json:"pool_size" jsonschema:"default=20,description=Ranked candidates considered for the buckets"`
	} `yaml:"ranking" json:"ranking" jsonschema:"description=Digest ranking configuration"`

	Validation struct {
		Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-probe timeout"`
		MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=5,description=Parallel validation probes"`
	} `yaml:"validation" json:"validation" jsonschema:"description=On-demand source validation configuration"`

	Health struct {
		Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Per-probe timeout for health checks"`
		MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=3,description=Parallel health probes"`
		SlowThreshold float64       `yaml:"slow_threshold" json:"slow_threshold" jsonschema:"default=5,description=Seconds before a source counts as slow"`
		StaleAfter    time.Duration `yaml:"stale_after" json:"stale_after" jsonschema:"default=168h,description=Newest-entry age before a source counts as stale"`
		HistoryWindow time.Duration `yaml:"history_window" json:"history_window" jsonschema:"default=24h,description=Health snapshot retention"`
		MaxDetails    int           `yaml:"max_details" json:"max_details" jsonschema:"default=5,description=Detail rows per report category"`
	} `yaml:"health" json:"health" jsonschema:"description=Health monitoring configuration"`

	Schedule struct {
		Ingest     string        `yaml:"ingest" json:"ingest" jsonschema:"default=@every 8h,description=Cron spec for feed ingestion"`
		Health     string        `yaml:"health" json:"health" jsonschema:"default=@every 1h,description=Cron spec for health checks"`
		Retention  string        `yaml:"retention" json:"retention" jsonschema:"default=@every 24h,description=Cron spec for retention cleanup"`
		RetainFor  time.Duration `yaml:"retain_for" json:"retain_for" jsonschema:"default=168h,description=How long stored items are kept"`
		MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Concurrent source fetches per ingest run"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Digest struct {
		Window   time.Duration `yaml:"window" json:"window" jsonschema:"default=24h,description=How far back a digest looks"`
		MaxItems int           `yaml:"max_items" json:"max_items" jsonschema:"default=50,description=Most stored items a digest considers"`
	} `yaml:"digest" json:"digest" jsonschema:"description=Digest assembly configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full-text extraction configuration"`
}

// Source describes one configured feed. A source excluded from ingestion
// with enabled: false still shows up in validation and health checks.
type Source struct {
	Name        string `yaml:"name" json:"name" jsonschema:"description=Source name, defaults to the URL"`
	URL         string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Website     string `yaml:"website,omitempty" json:"website,omitempty" jsonschema:"description=Human-facing site behind the feed"`
	ContentType string `yaml:"content_type" json:"content_type" jsonschema:"default=blog,enum=blog,enum=audio,enum=video,description=Content bucket"`
	Priority    int    `yaml:"priority" json:"priority" jsonschema:"default=3,minimum=1,description=Source priority, lower is more important"`
	Enabled     *bool  `yaml:"enabled" json:"enabled,omitempty" jsonschema:"default=true,description=Include the source in scheduled ingestion"`
}

// ScoringConfig holds keyword lists and LLM settings for significance scoring
type ScoringConfig struct {
	HighKeywords   []string  `yaml:"high_keywords" json:"high_keywords" jsonschema:"description=Title keywords adding 1.5 to the score"`
	MediumKeywords []string  `yaml:"medium_keywords" json:"medium_keywords" jsonschema:"description=Title keywords adding 0.5 to the score"`
	LLM            LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM scoring settings"`
}

// LLMConfig holds LLM configuration for significance scoring
type LLMConfig struct {
	Enabled     bool    `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Score with an LLM instead of keywords"`
	Endpoint    string  `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey      string  `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string  `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature float64 `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=100,description=Maximum tokens in response"`
}

// ExtractionConfig holds full-text extraction settings
type ExtractionConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Fetch full article text for short entries"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for article requests"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with documented defaults
func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:feedpulse.db?cache=shared&mode=rwc"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}

	// sources
	for i := range cfg.Sources {
		if cfg.Sources[i].Name == "" {
			cfg.Sources[i].Name = cfg.Sources[i].URL
		}
		if cfg.Sources[i].ContentType == "" {
			cfg.Sources[i].ContentType = domain.ContentTypeBlog
		}
		if cfg.Sources[i].Priority == 0 {
			cfg.Sources[i].Priority = 3
		}
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.CacheTTL == 0 {
		cfg.Fetch.CacheTTL = time.Hour
	}
	if cfg.Fetch.MaxPerFeed == 0 {
		cfg.Fetch.MaxPerFeed = 10
	}
	if cfg.Fetch.MinBodyLen == 0 {
		cfg.Fetch.MinBodyLen = 50
	}
	if cfg.Fetch.MaxBodyLen == 0 {
		cfg.Fetch.MaxBodyLen = 2000
	}
	if cfg.Fetch.RateLimit.MaxRequests == 0 {
		cfg.Fetch.RateLimit.MaxRequests = 30
	}
	if cfg.Fetch.RateLimit.Window == 0 {
		cfg.Fetch.RateLimit.Window = time.Minute
	}

	// cache
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = "localhost:6379"
	}

	// scoring
	if cfg.Scoring.LLM.Model == "" {
		cfg.Scoring.LLM.Model = "gpt-4o-mini"
	}
	if cfg.Scoring.LLM.Temperature == 0 {
		cfg.Scoring.LLM.Temperature = 0.3
	}
	if cfg.Scoring.LLM.MaxTokens == 0 {
		cfg.Scoring.LLM.MaxTokens = 100
	}

	// ranking
	if cfg.Ranking.TopStories == 0 {
		cfg.Ranking.TopStories = 3
	}
	if cfg.Ranking.MaxBlog == 0 {
		cfg.Ranking.MaxBlog = 8
	}
	if cfg.Ranking.MaxAudio == 0 {
		cfg.Ranking.MaxAudio = 6
	}
	if cfg.Ranking.MaxVideo == 0 {
		cfg.Ranking.MaxVideo = 6
	}
	if cfg.Ranking.PoolSize == 0 {
		cfg.Ranking.PoolSize = 20
	}

	// validation
	if cfg.Validation.Timeout == 0 {
		cfg.Validation.Timeout = 10 * time.Second
	}
	if cfg.Validation.MaxConcurrent == 0 {
		cfg.Validation.MaxConcurrent = 5
	}

	// health
	if cfg.Health.Timeout == 0 {
		cfg.Health.Timeout = 15 * time.Second
	}
	if cfg.Health.MaxConcurrent == 0 {
		cfg.Health.MaxConcurrent = 3
	}
	if cfg.Health.SlowThreshold == 0 {
		cfg.Health.SlowThreshold = 5.0
	}
	if cfg.Health.StaleAfter == 0 {
		cfg.Health.StaleAfter = 7 * 24 * time.Hour
	}
	if cfg.Health.HistoryWindow == 0 {
		cfg.Health.HistoryWindow = 24 * time.Hour
	}
	if cfg.Health.MaxDetails == 0 {
		cfg.Health.MaxDetails = 5
	}

	// schedule
	if cfg.Schedule.Ingest == "" {
		cfg.Schedule.Ingest = "@every 8h"
	}
	if cfg.Schedule.Health == "" {
		cfg.Schedule.Health = "@every 1h"
	}
	if cfg.Schedule.Retention == "" {
		cfg.Schedule.Retention = "@every 24h"
	}
	if cfg.Schedule.RetainFor == 0 {
		cfg.Schedule.RetainFor = 7 * 24 * time.Hour
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}

	// digest
	if cfg.Digest.Window == 0 {
		cfg.Digest.Window = 24 * time.Hour
	}
	if cfg.Digest.MaxItems == 0 {
		cfg.Digest.MaxItems = 50
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return fmt.Errorf("cache.backend must be memory or redis, got %q", cfg.Cache.Backend)
	}

	seen := make(map[string]bool, len(cfg.Sources))
	for _, src := range cfg.Sources {
		if seen[src.Name] {
			return fmt.Errorf("duplicate source name %q", src.Name)
		}
		seen[src.Name] = true

		switch src.ContentType {
		case domain.ContentTypeBlog, domain.ContentTypeAudio, domain.ContentTypeVideo:
		default:
			return fmt.Errorf("source %q: unknown content_type %q", src.Name, src.ContentType)
		}
		if src.Priority < 1 {
			return fmt.Errorf("source %q: priority must be at least 1", src.Name)
		}
	}

	if cfg.Scoring.LLM.Enabled {
		if cfg.Scoring.LLM.Endpoint == "" {
			return fmt.Errorf("scoring.llm.endpoint is required when llm scoring is enabled")
		}
		if cfg.Scoring.LLM.Temperature < 0 || cfg.Scoring.LLM.Temperature > 2 {
			return fmt.Errorf("scoring.llm.temperature must be between 0 and 2")
		}
	}

	if cfg.Extraction.Enabled && cfg.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the base URL for generated feeds and links
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetSources converts configured sources to domain sources. A source with
// no enabled flag counts as enabled.
func (c *Config) GetSources() []domain.Source {
	res := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		res = append(res, domain.Source{
			Name:        s.Name,
			URL:         s.URL,
			Website:     s.Website,
			ContentType: s.ContentType,
			Priority:    s.Priority,
			Enabled:     s.Enabled == nil || *s.Enabled,
		})
	}
	return res
}

// GetLLMConfig returns LLM scoring configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.Scoring.LLM
}

// GetExtractionConfig returns full-text extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}
