package server

import (
	"log"
	"net/http"

	"github.com/umputun/feedpulse/pkg/feed"
)

// rssDigestHandler serves the digest top stories as an RSS 2.0 feed
func (s *Server) rssDigestHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.digest.Build(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to build digest for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(s.config.GetBaseURL())
	rss, err := generator.GenerateRSS(d)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler exports configured sources as an OPML subscription list
func (s *Server) opmlHandler(w http.ResponseWriter, _ *http.Request) {
	generator := feed.NewGenerator(s.config.GetBaseURL())
	opml, err := generator.GenerateOPML(s.sources)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
