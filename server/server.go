package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/feedpulse/pkg/domain"
	"github.com/umputun/feedpulse/pkg/validator"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/digest_builder.go -pkg mocks -skip-ensure -fmt goimports . DigestBuilder
//go:generate moq -out mocks/source_validator.go -pkg mocks -skip-ensure -fmt goimports . SourceValidator
//go:generate moq -out mocks/health_monitor.go -pkg mocks -skip-ensure -fmt goimports . HealthMonitor
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server represents HTTP server instance
type Server struct {
	config       ConfigProvider
	digest       DigestBuilder
	validator    SourceValidator
	monitor      HealthMonitor
	scheduler    Scheduler
	sources      []domain.Source
	validateOpts validator.Opts
	version      string
	debug        bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// DigestBuilder assembles a ranked digest from stored items.
type DigestBuilder interface {
	Build(ctx context.Context) (domain.Digest, error)
}

// SourceValidator probes feed sources and reports per-source diagnostics.
type SourceValidator interface {
	ValidateBatch(ctx context.Context, sources []domain.Source, opts validator.Opts) domain.ValidationReport
}

// HealthMonitor keeps the most recent scheduled health check result.
type HealthMonitor interface {
	LastCheck() (domain.HealthCheck, bool)
}

// Scheduler triggers pipeline runs outside the regular cadence.
type Scheduler interface {
	RunIngestNow(ctx context.Context) (int, error)
	RunHealthNow(ctx context.Context) domain.HealthCheck
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
}

// Deps bundles everything the HTTP surface calls into.
type Deps struct {
	Config       ConfigProvider
	Digest       DigestBuilder
	Validator    SourceValidator
	Monitor      HealthMonitor
	Scheduler    Scheduler
	Sources      []domain.Source
	ValidateOpts validator.Opts
}

// New initializes a new server instance
func New(deps Deps, version string, debug bool) *Server {
	s := &Server{
		config:       deps.Config,
		digest:       deps.Digest,
		validator:    deps.Validator,
		monitor:      deps.Monitor,
		scheduler:    deps.Scheduler,
		sources:      deps.Sources,
		validateOpts: deps.ValidateOpts,
		version:      version,
		debug:        debug,
		router:       routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedpulse", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /digest", s.digestHandler)
		r.HandleFunc("POST /digest/refresh", s.refreshHandler)
		r.HandleFunc("GET /sources", s.sourcesHandler)
		r.HandleFunc("POST /sources/validate", s.validateHandler)
		r.HandleFunc("GET /sources/opml", s.opmlHandler)
		r.HandleFunc("GET /health/report", s.healthReportHandler)
		r.HandleFunc("POST /health/check", s.healthCheckHandler)
	})

	// RSS routes
	s.router.HandleFunc("GET /rss/digest", s.rssDigestHandler)
}
