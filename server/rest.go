package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/feedpulse/pkg/domain"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// digestHandler returns the current ranked digest
func (s *Server) digestHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.digest.Build(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to build digest: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, d)
}

// refreshHandler kicks off feed ingestion and returns immediately
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	// background context, ingestion must survive the request
	go func() {
		if _, err := s.scheduler.RunIngestNow(context.Background()); err != nil {
			log.Printf("[ERROR] manual refresh failed: %v", err)
		}
	}()

	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

// sourcesHandler lists configured sources
func (s *Server) sourcesHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"sources": s.sources,
		"total":   len(s.sources),
	})
}

// validateHandler probes the posted sources, or the configured ones when
// the body is empty. Per-probe timeout and concurrency can be overridden
// with the timeout and max_concurrent query parameters.
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sources []domain.Source `json:"sources"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	sources := req.Sources
	if len(sources) == 0 {
		sources = s.sources
	}

	opts := s.validateOpts
	if v := r.URL.Query().Get("timeout"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			opts.Timeout = d
		}
	}
	if v := r.URL.Query().Get("max_concurrent"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxConcurrent = n
		}
	}

	report := s.validator.ValidateBatch(r.Context(), sources, opts)
	renderJSON(w, r, http.StatusOK, report)
}

// healthReportHandler returns the latest scheduled health check
func (s *Server) healthReportHandler(w http.ResponseWriter, r *http.Request) {
	check, ok := s.monitor.LastCheck()
	if !ok {
		// nothing ran yet, an empty report beats a 404 for pollers
		renderJSON(w, r, http.StatusOK, domain.HealthCheck{})
		return
	}
	renderJSON(w, r, http.StatusOK, check)
}

// healthCheckHandler runs a health check immediately
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	check := s.scheduler.RunHealthNow(r.Context())
	renderJSON(w, r, http.StatusOK, check)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
