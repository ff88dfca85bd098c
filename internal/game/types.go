// internal/game/types.go
//
// Core type definitions for the logo quiz engine.
// Defines:
//   - View: which screen a session is on (home/playing/completed).
//   - Card: one deck entry plus its per-session play state.
//   - Notice: the single-slot transient message shown to the player.
//   - Session: the aggregate run state for one player session.

package game

import (
	"time"

	"github.com/kwtplay/logoquiz/internal/logos"
)

// View identifies the screen a session is currently on.
// Possible values:
//   - "home":      level selection; the only entry point into a new game.
//   - "playing":   a deck is live and the timer is ticking.
//   - "completed": every card is solved; elapsed time is frozen.
type View string

const (
	ViewHome      View = "home"
	ViewPlaying   View = "playing"
	ViewCompleted View = "completed"
)

// Card is a pool entry augmented with mutable play state. Cards are created
// fresh on every level start and discarded when the session leaves the game.
type Card struct {
	logos.Entry
	Input     string `json:"input"`     // text typed by the player so far
	Solved    bool   `json:"solved"`    // true once a correct match is recorded
	Revealed  bool   `json:"revealed"`  // solved via reveal rather than typing
	HintShown bool   `json:"hintShown"` // whether the hint text is visible
}

// Notice is a transient user-facing message. A new notice replaces the old
// one; it is dropped from snapshots once Expires has passed.
type Notice struct {
	Text    string    `json:"text"`
	Expires time.Time `json:"expires"`
}

// Session holds the whole run state for one player session.
type Session struct {
	ID           string      `json:"id"`
	View         View        `json:"view"`
	Level        logos.Level `json:"level,omitempty"`
	Deck         []Card      `json:"deck"`
	Elapsed      int         `json:"elapsed"`      // seconds, ticks only while playing
	FinalElapsed int         `json:"finalElapsed"` // snapshot taken at completion
	Reveals      int         `json:"reveals"`      // reveal credits, never negative
	Focus        int         `json:"focus"`        // next input index, -1 when none
	Notice       *Notice     `json:"notice,omitempty"`
}
