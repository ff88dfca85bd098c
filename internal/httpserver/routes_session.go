// internal/httpserver/routes_session.go
//
// HTTP routes for quiz sessions. One endpoint per state-machine transition:
//   - POST /session/new           → create a session on the home view
//   - GET  /session/{id}          → consistent snapshot of session state
//   - POST /session/{id}/start    → build a deck and start playing
//   - POST /session/{id}/input    → record typed text (auto-checks answer)
//   - POST /session/{id}/reveal   → spend one reveal credit
//   - POST /session/{id}/hint     → show a hint on the first unsolved card
//   - POST /session/{id}/share    → format the shareable result text
//   - POST /session/{id}/share-reveals → share, then grant +2 credits
//   - POST /session/{id}/home     → abandon/return to level selection
//
// Timer lifecycle: the per-session ticker starts on a successful level
// start and is stopped here on every transition that leaves the playing
// view (completion, abandon). The tick itself goes through store.Update so
// it always observes committed state.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kwtplay/logoquiz/internal/daily"
	"github.com/kwtplay/logoquiz/internal/game"
	"github.com/kwtplay/logoquiz/internal/history"
	"github.com/kwtplay/logoquiz/internal/logos"
	"github.com/kwtplay/logoquiz/internal/share"
	"github.com/kwtplay/logoquiz/internal/store"
)

// mountSession registers all /session routes.
func (s *Server) mountSession(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/new", s.handleNewSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Get("/ws", s.handleSessionWS)
			r.Post("/start", s.handleStart)
			r.Post("/input", s.handleInput)
			r.Post("/reveal", s.handleReveal)
			r.Post("/hint", s.handleHint)
			r.Post("/share", s.handleShare)
			r.Post("/share-reveals", s.handleShareReveals)
			r.Post("/home", s.handleHome)
		})
	})
}

// ---------------------------- session lifecycle ----------------------------

// newSessionRes is returned by POST /session/new.
type newSessionRes struct {
	SessionID string `json:"sessionId"`
}

// handleNewSession creates a fresh session on the home view.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := game.NewSession()
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: sess.ID})
}

// handleSnapshot returns a consistent copy of the current session state.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	s.writeSnapshot(w, snap)
}

// startReq is the payload for POST /session/{id}/start.
type startReq struct {
	Level logos.Level `json:"level"`
	Daily bool        `json:"daily"` // deterministic deck shared by all players today
}

// handleStart builds a deck and transitions home → playing. An empty deck
// refuses the transition with 409 and leaves the session on home.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if !req.Level.Valid() {
		http.Error(w, `{"error":"bad_level"}`, http.StatusBadRequest)
		return
	}

	rng := s.deckRNG(req.Daily)
	id := chi.URLParam(r, "id")
	startErr := s.update(w, r, id, func(sess *game.Session) error {
		return sess.Start(req.Level, logos.Pool(), rng)
	})
	if startErr != nil {
		if errors.Is(startErr, game.ErrLevelUnavailable) {
			snap, err := s.store.Snapshot(r.Context(), id)
			if err == nil {
				w.WriteHeader(http.StatusConflict)
				s.writeSnapshot(w, snap)
			}
		}
		return
	}

	s.startTimer(id)
	s.respondSnapshot(w, r, id)
}

// deckRNG returns the shuffle source: HMAC-seeded for the daily deck,
// random otherwise.
func (s *Server) deckRNG(dailyDeck bool) *rand.Rand {
	if dailyDeck {
		hi, lo := daily.Seed(time.Now(), s.salt)
		return rand.New(rand.NewPCG(hi, lo))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// ------------------------------ play actions -------------------------------

// inputReq is the payload for POST /session/{id}/input.
type inputReq struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

// handleInput updates a card's typed text and auto-checks it.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.playUpdate(w, r, id, func(sess *game.Session) error {
		return sess.SetInput(req.Index, req.Value)
	}); err != nil {
		return
	}
	s.respondSnapshot(w, r, id)
}

// handleReveal spends one reveal credit on the first unsolved card.
// A reveal with zero credits is a no-op, not an error.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.playUpdate(w, r, id, func(sess *game.Session) error {
		sess.RevealOne()
		return nil
	}); err != nil {
		return
	}
	s.respondSnapshot(w, r, id)
}

// handleHint shows (or toggles) a hint per the first-unsolved rule.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.playUpdate(w, r, id, func(sess *game.Session) error {
		sess.ShowHint()
		return nil
	}); err != nil {
		return
	}
	s.respondSnapshot(w, r, id)
}

// handleHome abandons the game (or leaves the completed screen) and
// returns to level selection, releasing the timer.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.update(w, r, id, func(sess *game.Session) error {
		sess.ReturnHome()
		return nil
	}); err != nil {
		return
	}
	s.stopTimer(id)
	s.respondSnapshot(w, r, id)
}

// -------------------------------- sharing ----------------------------------

// shareReq carries the client-reported share capability.
type shareReq struct {
	Capability share.Capability `json:"capability"`
}

// shareRes is returned by the share endpoints.
type shareRes struct {
	Summary string        `json:"summary"`
	Outcome share.Outcome `json:"outcome"`
	Reveals int           `json:"reveals"`
}

// handleShare formats the result summary and resolves the share outcome.
// Platform failures are the client's to swallow; the server only varies
// the notice text.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	s.doShare(w, r, false)
}

// handleShareReveals performs a share and then grants +2 reveal credits
// unconditionally, even if the user cancels the platform dialog.
func (s *Server) handleShareReveals(w http.ResponseWriter, r *http.Request) {
	s.doShare(w, r, true)
}

func (s *Server) doShare(w http.ResponseWriter, r *http.Request, reward bool) {
	var req shareReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	id := chi.URLParam(r, "id")
	snap, err := s.store.Snapshot(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	// There is no result to share before a deck has been dealt.
	if snap.View == game.ViewHome {
		http.Error(w, `{"error":"not_playing"}`, http.StatusConflict)
		return
	}

	elapsed := snap.FinalElapsed
	if elapsed == 0 {
		elapsed = snap.Elapsed
	}
	summary := share.Summary(snap.SolvedCount(), snap.Level, elapsed, s.shareURL)
	outcome := share.Resolve(req.Capability)

	reveals := snap.Reveals
	updateErr := s.store.Update(r.Context(), id, func(sess *game.Session) error {
		if reward {
			sess.GrantReveals(game.ShareRewardReveals)
			sess.Notify("+2 reveals unlocked!")
		} else if text := share.NoticeFor(outcome); text != "" {
			sess.Notify(text)
		}
		reveals = sess.Reveals
		return nil
	})
	if updateErr != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}

	_ = json.NewEncoder(w).Encode(shareRes{Summary: summary, Outcome: outcome, Reveals: reveals})
}

// ------------------------------ update helpers -----------------------------

// update runs fn through the store and maps the usual errors to HTTP
// statuses. Completion detection and history recording happen here so that
// every mutating route gets them for free.
func (s *Server) update(w http.ResponseWriter, r *http.Request, id string, fn func(*game.Session) error) error {
	var completed *history.Result

	err := s.store.Update(r.Context(), id, func(sess *game.Session) error {
		before := sess.View
		if err := fn(sess); err != nil {
			return err
		}
		if before == game.ViewPlaying && sess.View == game.ViewCompleted {
			completed = &history.Result{
				Level:          string(sess.Level),
				Solved:         sess.SolvedCount(),
				Revealed:       sess.RevealedCount(),
				ElapsedSeconds: sess.FinalElapsed,
				FinishedAt:     time.Now().UTC(),
			}
		}
		return nil
	})

	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	case errors.Is(err, game.ErrNoSuchCard):
		http.Error(w, `{"error":"no_such_card"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrNotPlaying):
		http.Error(w, `{"error":"not_playing"}`, http.StatusConflict)
	case errors.Is(err, game.ErrNotHome):
		http.Error(w, `{"error":"not_home"}`, http.StatusConflict)
	}

	if completed != nil {
		// The deck is done: release the ticker before anything else so the
		// frozen final time cannot race a late tick.
		s.stopTimer(id)
		s.recordResult(r.Context(), *completed)
	}
	return err
}

// playUpdate is update for routes valid only while a deck is live.
func (s *Server) playUpdate(w http.ResponseWriter, r *http.Request, id string, fn func(*game.Session) error) error {
	return s.update(w, r, id, func(sess *game.Session) error {
		if sess.View != game.ViewPlaying {
			return game.ErrNotPlaying
		}
		return fn(sess)
	})
}

// respondSnapshot encodes the post-transition state.
func (s *Server) respondSnapshot(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := s.store.Snapshot(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	s.writeSnapshot(w, snap)
}

// snapshotRes augments the raw session with derived counters the client
// renders directly.
type snapshotRes struct {
	*game.Session
	SolvedCount   int `json:"solvedCount"`
	RevealedCount int `json:"revealedCount"`
	Total         int `json:"total"`
}

func (s *Server) writeSnapshot(w http.ResponseWriter, snap *game.Session) {
	_ = json.NewEncoder(w).Encode(snapshotRes{
		Session:       snap,
		SolvedCount:   snap.SolvedCount(),
		RevealedCount: snap.RevealedCount(),
		Total:         len(snap.Deck),
	})
}

// ------------------------------ timer plumbing -----------------------------

// startTimer begins the one-second tick for a playing session, replacing
// any stale timer left from a previous game.
func (s *Server) startTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	s.timers[id] = game.NewTimer(time.Second, func() { s.tick(id) })
}

// stopTimer releases a session's timer if one is running.
func (s *Server) stopTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// tick advances a session's clock through the store so the increment is
// atomic with respect to handler mutations. A tick that finds the session
// gone or no longer playing shuts its own timer down.
func (s *Server) tick(id string) {
	playing := false
	err := s.store.Update(context.Background(), id, func(sess *game.Session) error {
		sess.Tick()
		playing = sess.View == game.ViewPlaying
		return nil
	})
	if err != nil || !playing {
		s.stopTimer(id)
	}
}

// recordResult appends a finished game to the local history (best effort).
func (s *Server) recordResult(ctx context.Context, res history.Result) {
	if s.history == nil {
		return
	}
	if err := s.history.Insert(ctx, res); err != nil {
		log.Warn().Err(err).Str("level", res.Level).Msg("record result")
	}
}
