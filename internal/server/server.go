// Package server provides the HTTP status API for the HandyPi tracker.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lasaths/HandyPi/internal/app"
	"github.com/lasaths/HandyPi/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store *store.Store
	// Stats supplies the live pipeline counters for /api/status.
	Stats func() app.Stats
}

// Server exposes tracker health, live pipeline stats, and gesture
// profiles over HTTP.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Stats != nil {
		s.mux.HandleFunc("/api/status", s.handleStatus)
	}

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/profiles", s.handleProfiles)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, s.config.Stats())
}

// handleProfiles handles GET requests to /api/profiles.
func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	profiles, err := s.config.Store.Profiles().List()
	if err != nil {
		http.Error(w, "Failed to list profiles", http.StatusInternalServerError)
		return
	}

	type profileResponse struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Variant   string  `json:"variant"`
		Threshold float64 `json:"threshold"`
		Enabled   bool    `json:"enabled"`
	}

	response := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, profileResponse{
			ID:        p.ID,
			Name:      p.Name,
			Variant:   string(p.Variant),
			Threshold: p.Threshold,
			Enabled:   p.Enabled,
		})
	}

	s.writeJSON(w, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
