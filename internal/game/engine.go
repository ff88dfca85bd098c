// internal/game/engine.go
//
// Core state machine for a single quiz session.
// Responsibilities:
//   - Create sessions and drive the home → playing → completed transitions.
//   - Apply player input and auto-check answers on every change.
//   - Handle reveal credits, hints, timer ticks, and the completion check.
//
// Notes:
//   - Every deck mutation builds a new slice (copy-on-write), so a snapshot
//     reader never observes a half-updated card.
//   - The completion check runs after each mutating transition, not on a
//     schedule: the elapsed time frozen at completion is exact.
//   - Reveal credits start at 2 per level and never go negative.

package game

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/kwtplay/logoquiz/internal/logos"
)

const (
	// StartingReveals is the reveal-credit balance granted on level start.
	StartingReveals = 2

	// ShareRewardReveals is the credit grant for a share-for-reveals action.
	ShareRewardReveals = 2

	// noticeTTL matches the client's toast auto-dismiss interval.
	noticeTTL = 1400 * time.Millisecond
)

var (
	// ErrLevelUnavailable means a level start found zero deck candidates.
	ErrLevelUnavailable = errors.New("no entries available for level")

	// ErrNotPlaying means a play action arrived outside the playing view.
	ErrNotPlaying = errors.New("session is not playing")

	// ErrNoSuchCard means a card index was out of deck range.
	ErrNoSuchCard = errors.New("no such card")

	// ErrNotHome means a level start arrived mid-game; home is the only
	// entry point into a new playing session.
	ErrNotHome = errors.New("session is not on the home view")
)

// NewSession constructs a fresh session sitting on the home view.
func NewSession() *Session {
	return &Session{
		ID:    uuid.NewString(),
		View:  ViewHome,
		Focus: -1,
	}
}

// Start builds a deck for the level and moves the session into play.
// An empty deck refuses the transition: the session stays home with a
// transient notice, and ErrLevelUnavailable is returned.
func (s *Session) Start(level logos.Level, pool []logos.Entry, rng *rand.Rand) error {
	if s.View != ViewHome {
		return ErrNotHome
	}
	base := BuildDeck(level, pool, rng)
	if len(base) == 0 {
		s.Notify("No logos for this level yet. Check your sheet.")
		return ErrLevelUnavailable
	}

	deck := make([]Card, len(base))
	for i, e := range base {
		deck[i] = Card{Entry: e}
	}

	s.Level = level
	s.Deck = deck
	s.Elapsed = 0
	s.FinalElapsed = 0
	s.Reveals = StartingReveals
	s.Focus = 0
	s.View = ViewPlaying
	return nil
}

// Tick advances elapsed time by one second. Only the playing view ticks;
// a stray tick after completion or abandon is ignored.
func (s *Session) Tick() {
	if s.View == ViewPlaying {
		s.Elapsed++
	}
}

// SetInput records new input text for a card and immediately checks it.
// On a correct match the card is marked solved, its hint is cleared, and
// focus advances to the next unsolved card. Input on an already-solved
// card is ignored.
func (s *Session) SetInput(i int, value string) error {
	if s.View != ViewPlaying {
		return ErrNotPlaying
	}
	if i < 0 || i >= len(s.Deck) {
		return ErrNoSuchCard
	}
	if s.Deck[i].Solved {
		return nil
	}

	next := append([]Card(nil), s.Deck...)
	next[i].Input = value
	if Matches(next[i].Entry, value) {
		next[i].Solved = true
		next[i].HintShown = false
		s.Deck = next
		s.Focus = NextUnsolved(next, i)
		s.checkCompleted()
		return nil
	}
	s.Deck = next
	return nil
}

// RevealOne auto-solves the first unsolved card at the cost of one reveal
// credit, filling its input with the canonical answer verbatim. A no-op
// when credits are exhausted, the deck is done, or the view is not playing.
func (s *Session) RevealOne() {
	if s.View != ViewPlaying || s.Reveals <= 0 {
		return
	}
	pick := NextUnsolved(s.Deck, -1)
	if pick == -1 {
		return
	}

	next := append([]Card(nil), s.Deck...)
	answer := ""
	if len(next[pick].Answers) > 0 {
		answer = next[pick].Answers[0]
	}
	next[pick].Input = answer
	next[pick].Solved = true
	next[pick].Revealed = true
	next[pick].HintShown = false

	s.Deck = next
	s.Reveals--
	s.Focus = NextUnsolved(next, pick)
	s.checkCompleted()
}

// ShowHint reveals the hint for the first unsolved card that has none
// showing. If every unsolved card already shows its hint, the first
// unsolved card's hint is toggled instead.
func (s *Session) ShowHint() {
	if s.View != ViewPlaying {
		return
	}
	next := append([]Card(nil), s.Deck...)
	for i := range next {
		if !next[i].Solved && !next[i].HintShown {
			next[i].HintShown = true
			s.Deck = next
			return
		}
	}
	if i := NextUnsolved(next, -1); i != -1 {
		next[i].HintShown = !next[i].HintShown
		s.Deck = next
	}
}

// GrantReveals adds n reveal credits. Used by the share-for-reveals flow,
// which grants unconditionally regardless of the share outcome.
func (s *Session) GrantReveals(n int) {
	if n > 0 {
		s.Reveals += n
	}
}

// ReturnHome discards the deck and all session-specific play state.
func (s *Session) ReturnHome() {
	s.View = ViewHome
	s.Level = ""
	s.Deck = nil
	s.Elapsed = 0
	s.FinalElapsed = 0
	s.Reveals = 0
	s.Focus = -1
}

// Notify replaces the transient notice (single slot, no queueing).
func (s *Session) Notify(text string) {
	s.Notice = &Notice{Text: text, Expires: time.Now().Add(noticeTTL)}
}

// SolvedCount counts solved cards, revealed ones included. The reveal flag
// only drives a cosmetic badge, never the score.
func (s *Session) SolvedCount() int {
	n := 0
	for _, c := range s.Deck {
		if c.Solved {
			n++
		}
	}
	return n
}

// RevealedCount counts cards solved via the reveal mechanism.
func (s *Session) RevealedCount() int {
	n := 0
	for _, c := range s.Deck {
		if c.Revealed {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of the session safe to hand to readers.
// Expired notices are dropped on the way out.
func (s *Session) Snapshot() *Session {
	cp := *s
	cp.Deck = append([]Card(nil), s.Deck...)
	for i := range cp.Deck {
		cp.Deck[i].Answers = append([]string(nil), cp.Deck[i].Answers...)
	}
	if s.Notice != nil {
		if time.Now().After(s.Notice.Expires) {
			cp.Notice = nil
		} else {
			n := *s.Notice
			cp.Notice = &n
		}
	}
	return &cp
}

// checkCompleted freezes the elapsed time and moves to the completed view
// once every card is solved. Runs after each mutating transition.
func (s *Session) checkCompleted() {
	if s.View != ViewPlaying || len(s.Deck) == 0 {
		return
	}
	for _, c := range s.Deck {
		if !c.Solved {
			return
		}
	}
	s.FinalElapsed = s.Elapsed
	s.View = ViewCompleted
	s.Focus = -1
}

// NextUnsolved returns the index of the first unsolved card after from,
// wrapping to the first unsolved card overall; -1 when none remain.
// Pass from = -1 to get the first unsolved card in deck order.
func NextUnsolved(deck []Card, from int) int {
	for i := from + 1; i < len(deck); i++ {
		if !deck[i].Solved {
			return i
		}
	}
	for i := 0; i < len(deck); i++ {
		if !deck[i].Solved {
			return i
		}
	}
	return -1
}
