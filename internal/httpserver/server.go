// internal/httpserver/server.go
//
// HTTP server wiring for the logo quiz backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/pool", "/results/recent".
//   - Session endpoints: mounted under /session (see routes_session.go).
//   - Live state stream over WebSocket (see ws.go).
//   - Per-session timer ownership: a ticker runs only while a session is
//     in the playing view and is stopped on every exit path.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - The results history is optional; a nil history store disables the
//     /results endpoints' persistence without affecting gameplay.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/kwtplay/logoquiz/internal/game"
	"github.com/kwtplay/logoquiz/internal/history"
	"github.com/kwtplay/logoquiz/internal/logos"
	"github.com/kwtplay/logoquiz/internal/store"
)

// Server bundles router, in-memory session store, results history, and the
// per-session timers it owns.
type Server struct {
	r       *chi.Mux
	store   store.Store
	history *history.Store

	mu     sync.Mutex             // guards timers
	timers map[string]*game.Timer // active tickers keyed by session ID

	shareURL string // link embedded in share summaries
	salt     string // daily deck seed salt
}

// New constructs a Server, installs middleware, and registers routes.
// hist may be nil when no database is available.
func New(st store.Store, hist *history.Store) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		history:  hist,
		timers:   make(map[string]*game.Timer),
		shareURL: getEnv("SHARE_URL", "https://kwtlogoquiz.com"),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"logoquiz-go","endpoints":["/health","/pool","POST /session/new","GET /session/{id}","/results/recent"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Pool status: entry counts per level, so the client can decide which
	// level buttons to enable. An empty pool is the "no logos" condition.
	s.r.Get("/pool", s.handlePool)

	// Session endpoints
	s.mountSession(s.r)

	// Recent results (best-effort local history, no accounts)
	s.r.Get("/results/recent", s.handleRecentResults)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:3000.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ POOL ---------------------------------------

// poolRes describes the loaded entry pool for the level-select screen.
type poolRes struct {
	Total    int                 `json:"total"`
	PerLevel map[logos.Level]int `json:"perLevel"`
	Playable []logos.Level       `json:"playable"`
}

// handlePool reports entry counts and which levels currently have any
// candidates. Medium draws from Easy ∪ Medium and Hard from all three
// buckets, so higher levels can be playable on lower-bucket entries alone.
// Entries tagged with an unrecognized level are never dealt into a deck,
// so they count toward no level's playability.
func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	total, perLevel := logos.Stats()
	easy := perLevel[logos.LevelEasy]
	medium := perLevel[logos.LevelMedium]
	hard := perLevel[logos.LevelHard]

	res := poolRes{Total: total, PerLevel: perLevel, Playable: []logos.Level{}}
	if easy > 0 {
		res.Playable = append(res.Playable, logos.LevelEasy)
	}
	if easy+medium > 0 {
		res.Playable = append(res.Playable, logos.LevelMedium)
	}
	if easy+medium+hard > 0 {
		res.Playable = append(res.Playable, logos.LevelHard)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------ RESULTS ------------------------------------

// handleRecentResults returns the latest finished games from the local log.
func (s *Server) handleRecentResults(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		_ = json.NewEncoder(w).Encode([]history.Result{})
		return
	}
	out, err := s.history.Recent(r.Context(), 50)
	if err != nil {
		log.Warn().Err(err).Msg("query recent results")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
