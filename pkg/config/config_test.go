package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

sources:
  - name: Engineering Blog
    url: https://example.com/feed1.xml
    content_type: blog
    priority: 1
  - name: Weekly Podcast
    url: https://example.com/feed2.xml
    content_type: audio
    priority: 2
    enabled: false

fetch:
  timeout: 10s
  max_per_feed: 25

schedule:
  ingest: "@every 2h"
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)

		require.Len(t, cfg.Sources, 2)
		assert.Equal(t, "Engineering Blog", cfg.Sources[0].Name)
		assert.Equal(t, "https://example.com/feed1.xml", cfg.Sources[0].URL)
		assert.Equal(t, "blog", cfg.Sources[0].ContentType)
		assert.Equal(t, 1, cfg.Sources[0].Priority)
		assert.Nil(t, cfg.Sources[0].Enabled)

		require.NotNil(t, cfg.Sources[1].Enabled)
		assert.False(t, *cfg.Sources[1].Enabled)

		assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, 25, cfg.Fetch.MaxPerFeed)
		assert.Equal(t, "@every 2h", cfg.Schedule.Ingest)
	})

	t.Run("defaults", func(t *testing.T) {
		configContent := `
sources:
  - url: https://example.com/feed.xml
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// server defaults
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)

		// database defaults
		assert.Equal(t, "file:feedpulse.db?cache=shared&mode=rwc", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)

		// source normalization
		require.Len(t, cfg.Sources, 1)
		assert.Equal(t, "https://example.com/feed.xml", cfg.Sources[0].Name) // name defaults to URL
		assert.Equal(t, "blog", cfg.Sources[0].ContentType)
		assert.Equal(t, 3, cfg.Sources[0].Priority)

		// fetch defaults
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, time.Hour, cfg.Fetch.CacheTTL)
		assert.Equal(t, 10, cfg.Fetch.MaxPerFeed)
		assert.Equal(t, 50, cfg.Fetch.MinBodyLen)
		assert.Equal(t, 2000, cfg.Fetch.MaxBodyLen)
		assert.Equal(t, 30, cfg.Fetch.RateLimit.MaxRequests)
		assert.Equal(t, time.Minute, cfg.Fetch.RateLimit.Window)

		// cache defaults
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)

		// scoring defaults
		assert.Equal(t, "gpt-4o-mini", cfg.Scoring.LLM.Model)
		assert.InEpsilon(t, 0.3, cfg.Scoring.LLM.Temperature, 0.001)
		assert.Equal(t, 100, cfg.Scoring.LLM.MaxTokens)
		assert.False(t, cfg.Scoring.LLM.Enabled)

		// ranking defaults
		assert.Equal(t, 3, cfg.Ranking.TopStories)
		assert.Equal(t, 8, cfg.Ranking.MaxBlog)
		assert.Equal(t, 6, cfg.Ranking.MaxAudio)
		assert.Equal(t, 6, cfg.Ranking.MaxVideo)
		assert.Equal(t, 20, cfg.Ranking.PoolSize)

		// validation defaults
		assert.Equal(t, 10*time.Second, cfg.Validation.Timeout)
		assert.Equal(t, 5, cfg.Validation.MaxConcurrent)

		// health defaults
		assert.Equal(t, 15*time.Second, cfg.Health.Timeout)
		assert.Equal(t, 3, cfg.Health.MaxConcurrent)
		assert.InEpsilon(t, 5.0, cfg.Health.SlowThreshold, 0.001)
		assert.Equal(t, 7*24*time.Hour, cfg.Health.StaleAfter)
		assert.Equal(t, 24*time.Hour, cfg.Health.HistoryWindow)
		assert.Equal(t, 5, cfg.Health.MaxDetails)

		// schedule defaults
		assert.Equal(t, "@every 8h", cfg.Schedule.Ingest)
		assert.Equal(t, "@every 1h", cfg.Schedule.Health)
		assert.Equal(t, "@every 24h", cfg.Schedule.Retention)
		assert.Equal(t, 7*24*time.Hour, cfg.Schedule.RetainFor)
		assert.Equal(t, 5, cfg.Schedule.MaxWorkers)

		// digest defaults
		assert.Equal(t, 24*time.Hour, cfg.Digest.Window)
		assert.Equal(t, 50, cfg.Digest.MaxItems)

		// extraction defaults
		assert.False(t, cfg.Extraction.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Extraction.Timeout)
	})

	t.Run("environment variables expanded", func(t *testing.T) {
		t.Setenv("FEEDPULSE_TEST_KEY", "sk-test-12345")
		configContent := `
scoring:
  llm:
    api_key: "${FEEDPULSE_TEST_KEY}"
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		assert.Equal(t, "sk-test-12345", cfg.Scoring.LLM.APIKey)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("duplicate source names", func(t *testing.T) {
		configContent := `
sources:
  - name: Same
    url: https://example.com/a.xml
  - name: Same
    url: https://example.com/b.xml
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), `duplicate source name "Same"`)
	})

	t.Run("unknown content type", func(t *testing.T) {
		configContent := `
sources:
  - name: Odd
    url: https://example.com/feed.xml
    content_type: newsletter
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), `unknown content_type "newsletter"`)
	})

	t.Run("unknown cache backend", func(t *testing.T) {
		configContent := `
cache:
  backend: memcached
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "cache.backend must be memory or redis")
	})

	t.Run("llm enabled without endpoint", func(t *testing.T) {
		configContent := `
scoring:
  llm:
    enabled: true
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "scoring.llm.endpoint is required")
	})
}

func TestConfig_GetSources(t *testing.T) {
	configContent := `
sources:
  - name: Always On
    url: https://example.com/on.xml
    priority: 1
  - name: Explicitly On
    url: https://example.com/also-on.xml
    content_type: video
    enabled: true
  - name: Off
    url: https://example.com/off.xml
    enabled: false
`
	cfg, err := Load(writeConfig(t, configContent))
	require.NoError(t, err)

	sources := cfg.GetSources()
	require.Len(t, sources, 3)

	assert.Equal(t, "Always On", sources[0].Name)
	assert.Equal(t, 1, sources[0].Priority)
	assert.True(t, sources[0].Enabled, "no enabled flag counts as enabled")

	assert.Equal(t, "video", sources[1].ContentType)
	assert.True(t, sources[1].Enabled)

	assert.False(t, sources[2].Enabled)
}

func TestConfig_GetServerConfig(t *testing.T) {
	configContent := `
server:
  listen: ":9191"
  timeout: 20s
  base_url: https://pulse.example.com
`
	cfg, err := Load(writeConfig(t, configContent))
	require.NoError(t, err)

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9191", listen)
	assert.Equal(t, 20*time.Second, timeout)
	assert.Equal(t, "https://pulse.example.com", cfg.GetBaseURL())
}
