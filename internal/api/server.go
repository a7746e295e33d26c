// Package api exposes the calculation engine to the host UI over HTTP. It
// is thin glue: decode, merge settings defaults, call the engine, persist
// overrides, encode. All fee math lives in internal/engine.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"resale-radar/internal/config"
	"resale-radar/internal/db"
	"resale-radar/internal/engine"
)

// Server connects the engine, the settings store, and the schedule.
type Server struct {
	mu   sync.RWMutex
	cfg  *config.Config
	calc *engine.Calculator
	db   *db.DB

	// Concurrent reload requests coalesce into one actual reload.
	reload singleflight.Group
}

// NewServer creates a Server with the given settings, calculator, and
// database. The database may be nil in one-shot (CLI) use; endpoints that
// need persistence then answer 503.
func NewServer(cfg *config.Config, calc *engine.Calculator, database *db.DB) *Server {
	return &Server{cfg: cfg, calc: calc, db: database}
}

func (s *Server) calculator() *engine.Calculator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calc
}

func (s *Server) setCalculator(c *engine.Calculator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calc = c
}

func (s *Server) settings() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.cfg
}

func (s *Server) setSettings(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// Handler returns the HTTP handler with all API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handleSetConfig)
	mux.HandleFunc("GET /api/schedule", s.handleGetSchedule)
	mux.HandleFunc("POST /api/schedule/reload", s.handleReloadSchedule)
	mux.HandleFunc("POST /api/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/calculate/batch", s.handleCalculateBatch)
	mux.HandleFunc("POST /api/solve-cost", s.handleSolveCost)
	mux.HandleFunc("GET /api/products/{id}/fields", s.handleGetFields)
	mux.HandleFunc("POST /api/products/{id}/fields/{field}/override", s.handleOverrideField)
	mux.HandleFunc("POST /api/products/{id}/fields/reset", s.handleResetFields)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
