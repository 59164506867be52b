package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedpulse/pkg/config"
	"github.com/umputun/feedpulse/pkg/content"
	"github.com/umputun/feedpulse/pkg/digest"
	"github.com/umputun/feedpulse/pkg/fetcher"
	"github.com/umputun/feedpulse/pkg/ranker"
	"github.com/umputun/feedpulse/pkg/scheduler"
	"github.com/umputun/feedpulse/pkg/scorer"
	"github.com/umputun/feedpulse/pkg/store"
	"github.com/umputun/feedpulse/pkg/validator"
	"github.com/umputun/feedpulse/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	log.Printf("[INFO] starting feedpulse version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] feedpulse failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires the pipeline together and serves until the context is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// re-setup logging with the API key masked
	if cfg.Scoring.LLM.APIKey != "" {
		setupLog(opts.Debug, cfg.Scoring.LLM.APIKey)
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	st, err := store.New(store.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Printf("[WARN] store close: %v", closeErr)
		}
	}()

	if err = st.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to init store schema: %w", err)
	}

	var cache fetcher.Cache
	switch cfg.Cache.Backend {
	case "redis":
		redisCache, redisErr := fetcher.NewRedisCache(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if redisErr != nil {
			return fmt.Errorf("failed to connect to redis: %w", redisErr)
		}
		defer func() {
			if closeErr := redisCache.Close(); closeErr != nil {
				log.Printf("[WARN] redis close: %v", closeErr)
			}
		}()
		cache = redisCache
		log.Printf("[INFO] feed cache on redis at %s", cfg.Cache.Redis.Addr)
	default:
		cache = fetcher.NewMemoryCache()
	}

	var enricher fetcher.Enricher
	if cfg.Extraction.Enabled {
		enricher = content.NewExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent)
		log.Printf("[INFO] full-text extraction enabled")
	}

	limiter := fetcher.NewRateLimiter(cfg.Fetch.RateLimit.MaxRequests, cfg.Fetch.RateLimit.Window)
	feedFetcher := fetcher.New(fetcher.Config{
		Timeout:    cfg.Fetch.Timeout,
		UserAgent:  cfg.Fetch.UserAgent,
		CacheTTL:   cfg.Fetch.CacheTTL,
		MaxPerFeed: cfg.Fetch.MaxPerFeed,
		MinBodyLen: cfg.Fetch.MinBodyLen,
		MaxBodyLen: cfg.Fetch.MaxBodyLen,
	}, cache, limiter, enricher)

	keyword := scorer.NewKeywordScorer(cfg.Scoring.HighKeywords, cfg.Scoring.MediumKeywords)
	var itemScorer digest.Scorer = keyword
	if cfg.Scoring.LLM.Enabled {
		itemScorer = scorer.NewLLMScorer(scorer.LLMConfig{
			Endpoint:    cfg.Scoring.LLM.Endpoint,
			APIKey:      cfg.Scoring.LLM.APIKey,
			Model:       cfg.Scoring.LLM.Model,
			Temperature: cfg.Scoring.LLM.Temperature,
			MaxTokens:   cfg.Scoring.LLM.MaxTokens,
		}, keyword)
		log.Printf("[INFO] llm scoring enabled, model %s", cfg.Scoring.LLM.Model)
	}

	rankEngine := ranker.New(ranker.Config{
		TopStories: cfg.Ranking.TopStories,
		MaxBlog:    cfg.Ranking.MaxBlog,
		MaxAudio:   cfg.Ranking.MaxAudio,
		MaxVideo:   cfg.Ranking.MaxVideo,
		PoolSize:   cfg.Ranking.PoolSize,
	})

	sources := cfg.GetSources()
	builder := digest.NewBuilder(feedFetcher, itemScorer, st, rankEngine, digest.Config{
		Sources:    sources,
		MaxWorkers: cfg.Schedule.MaxWorkers,
		Window:     cfg.Digest.Window,
		MaxItems:   cfg.Digest.MaxItems,
	})

	probe := validator.New()
	monitor := validator.NewMonitor(probe, sources, validator.MonitorConfig{
		Timeout:       cfg.Health.Timeout,
		MaxConcurrent: cfg.Health.MaxConcurrent,
		SlowThreshold: cfg.Health.SlowThreshold,
		StaleAfter:    cfg.Health.StaleAfter,
		HistoryWindow: cfg.Health.HistoryWindow,
		MaxDetails:    cfg.Health.MaxDetails,
	})

	sched := scheduler.New(builder, monitor, st, scheduler.Config{
		IngestSpec:    cfg.Schedule.Ingest,
		HealthSpec:    cfg.Schedule.Health,
		RetentionSpec: cfg.Schedule.Retention,
		RetainFor:     cfg.Schedule.RetainFor,
	})
	if err = sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	srv := server.New(server.Deps{
		Config:    cfg,
		Digest:    builder,
		Validator: probe,
		Monitor:   monitor,
		Scheduler: sched,
		Sources:   sources,
		ValidateOpts: validator.Opts{
			Timeout:       cfg.Validation.Timeout,
			MaxConcurrent: cfg.Validation.MaxConcurrent,
			UserAgent:     cfg.Fetch.UserAgent,
		},
	}, revision, opts.Debug)

	if err = srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
