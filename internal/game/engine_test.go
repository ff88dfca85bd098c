package game

import (
	"testing"

	"github.com/kwtplay/logoquiz/internal/logos"
)

// startSession puts a session into play on a 15-entry Easy pool.
func startSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	if err := s.Start(logos.LevelEasy, makePool(15, 0, 0), testRNG()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

// solveCard types the canonical answer into card i.
func solveCard(t *testing.T, s *Session, i int) {
	t.Helper()
	if err := s.SetInput(i, s.Deck[i].Answers[0]); err != nil {
		t.Fatalf("SetInput(%d): %v", i, err)
	}
}

func TestNewSessionStartsHome(t *testing.T) {
	s := NewSession()
	if s.View != ViewHome {
		t.Errorf("view = %q, want home", s.View)
	}
	if s.ID == "" {
		t.Error("session has no id")
	}
	if s.Focus != -1 {
		t.Errorf("focus = %d, want -1", s.Focus)
	}
}

func TestStartInitializesSession(t *testing.T) {
	s := startSession(t)
	if s.View != ViewPlaying {
		t.Fatalf("view = %q, want playing", s.View)
	}
	if len(s.Deck) != EasyDeckSize {
		t.Errorf("deck size = %d, want %d", len(s.Deck), EasyDeckSize)
	}
	if s.Elapsed != 0 || s.FinalElapsed != 0 {
		t.Errorf("timer not reset: elapsed=%d final=%d", s.Elapsed, s.FinalElapsed)
	}
	if s.Reveals != StartingReveals {
		t.Errorf("reveals = %d, want %d", s.Reveals, StartingReveals)
	}
	if s.Focus != 0 {
		t.Errorf("focus = %d, want 0", s.Focus)
	}
	for i, c := range s.Deck {
		if c.Input != "" || c.Solved || c.Revealed || c.HintShown {
			t.Errorf("card %d not in default state: %+v", i, c)
		}
	}
}

func TestStartEmptyLevelRefused(t *testing.T) {
	s := NewSession()
	err := s.Start(logos.LevelEasy, nil, testRNG())
	if err != ErrLevelUnavailable {
		t.Fatalf("err = %v, want ErrLevelUnavailable", err)
	}
	if s.View != ViewHome {
		t.Errorf("view = %q, session must stay home", s.View)
	}
	if s.Notice == nil || s.Notice.Text == "" {
		t.Error("expected a transient notice on refused start")
	}
}

func TestStartOnlyFromHome(t *testing.T) {
	s := startSession(t)
	if err := s.Start(logos.LevelEasy, makePool(15, 0, 0), testRNG()); err != ErrNotHome {
		t.Fatalf("mid-game start: err = %v, want ErrNotHome", err)
	}
	s.ReturnHome()
	if err := s.Start(logos.LevelEasy, makePool(15, 0, 0), testRNG()); err != nil {
		t.Fatalf("restart after returning home: %v", err)
	}
}

func TestTickOnlyWhilePlaying(t *testing.T) {
	s := NewSession()
	s.Tick()
	if s.Elapsed != 0 {
		t.Error("home view must not tick")
	}

	s = startSession(t)
	s.Tick()
	s.Tick()
	if s.Elapsed != 2 {
		t.Errorf("elapsed = %d, want 2", s.Elapsed)
	}

	s.ReturnHome()
	s.Tick()
	if s.Elapsed != 0 {
		t.Error("tick after leaving play must be a no-op")
	}
}

func TestSetInputAutoChecks(t *testing.T) {
	s := startSession(t)

	if err := s.SetInput(0, "wrong"); err != nil {
		t.Fatalf("SetInput: %v", err)
	}
	if s.Deck[0].Solved {
		t.Error("wrong answer marked solved")
	}
	if s.Deck[0].Input != "wrong" {
		t.Errorf("input not recorded: %q", s.Deck[0].Input)
	}

	solveCard(t, s, 0)
	if !s.Deck[0].Solved || s.Deck[0].Revealed {
		t.Errorf("card 0 should be solved (not revealed): %+v", s.Deck[0])
	}
	if s.Focus != 1 {
		t.Errorf("focus = %d, want next unsolved card 1", s.Focus)
	}

	// Input on a solved card is ignored.
	if err := s.SetInput(0, "scribble"); err != nil {
		t.Fatalf("SetInput on solved card: %v", err)
	}
	if s.Deck[0].Input == "scribble" {
		t.Error("solved card input must be frozen")
	}
}

func TestSetInputErrors(t *testing.T) {
	s := startSession(t)
	if err := s.SetInput(len(s.Deck), "x"); err != ErrNoSuchCard {
		t.Errorf("out-of-range index: err = %v, want ErrNoSuchCard", err)
	}
	s.ReturnHome()
	if err := s.SetInput(0, "x"); err != ErrNotPlaying {
		t.Errorf("input outside play: err = %v, want ErrNotPlaying", err)
	}
}

func TestFocusWrapsToFirstUnsolved(t *testing.T) {
	s := startSession(t)
	last := len(s.Deck) - 1
	solveCard(t, s, last)
	if s.Focus != 0 {
		t.Errorf("focus = %d, want wrap to first unsolved 0", s.Focus)
	}
}

func TestRevealOne(t *testing.T) {
	s := startSession(t)

	s.RevealOne()
	c := s.Deck[0]
	if !c.Solved || !c.Revealed {
		t.Fatalf("first card should be reveal-solved: %+v", c)
	}
	if c.Input != c.Answers[0] {
		t.Errorf("revealed input = %q, want first alias %q verbatim", c.Input, c.Answers[0])
	}
	if s.Reveals != StartingReveals-1 {
		t.Errorf("reveals = %d, want %d", s.Reveals, StartingReveals-1)
	}
	if s.Focus != 1 {
		t.Errorf("focus = %d, want 1", s.Focus)
	}
}

func TestRevealOneNoCreditsIsNoop(t *testing.T) {
	s := startSession(t)
	s.Reveals = 0
	before := append([]Card(nil), s.Deck...)

	s.RevealOne()
	if s.Reveals != 0 {
		t.Errorf("reveals = %d, must never go negative", s.Reveals)
	}
	for i := range before {
		if s.Deck[i].Solved != before[i].Solved || s.Deck[i].Input != before[i].Input {
			t.Fatalf("deck changed by a credit-less reveal at card %d", i)
		}
	}
}

func TestShowHint(t *testing.T) {
	s := startSession(t)

	s.ShowHint()
	if !s.Deck[0].HintShown {
		t.Fatal("first unsolved card should show its hint")
	}
	s.ShowHint()
	if !s.Deck[1].HintShown {
		t.Fatal("second call should move to the next hintless card")
	}

	// All unsolved cards showing hints → toggle the first unsolved.
	for i := range s.Deck {
		s.Deck[i].HintShown = true
	}
	s.ShowHint()
	if s.Deck[0].HintShown {
		t.Error("expected hint toggle off on the first unsolved card")
	}
}

func TestSolveClearsHint(t *testing.T) {
	s := startSession(t)
	s.ShowHint()
	solveCard(t, s, 0)
	if s.Deck[0].HintShown {
		t.Error("solving must clear the card's hint")
	}
}

func TestCompletionFreezesElapsed(t *testing.T) {
	s := startSession(t)

	for i := 0; i < len(s.Deck)-1; i++ {
		solveCard(t, s, i)
		s.Tick()
	}
	if s.View != ViewPlaying {
		t.Fatalf("completed early at view %q", s.View)
	}
	ticked := s.Elapsed

	solveCard(t, s, len(s.Deck)-1)
	if s.View != ViewCompleted {
		t.Fatalf("view = %q, want completed on the final solve", s.View)
	}
	if s.FinalElapsed != ticked {
		t.Errorf("finalElapsed = %d, want frozen at %d", s.FinalElapsed, ticked)
	}

	// A late tick must not move the frozen time.
	s.Tick()
	if s.FinalElapsed != ticked || s.Elapsed != ticked {
		t.Error("tick after completion changed the clock")
	}
}

func TestCompletionCountsRevealedCards(t *testing.T) {
	s := startSession(t)
	s.RevealOne()
	for i := 1; i < len(s.Deck); i++ {
		solveCard(t, s, i)
	}
	if s.View != ViewCompleted {
		t.Fatal("revealed cards must count toward completion")
	}
	if s.SolvedCount() != len(s.Deck) {
		t.Errorf("solved count = %d, want %d (revealed included)", s.SolvedCount(), len(s.Deck))
	}
	if s.RevealedCount() != 1 {
		t.Errorf("revealed count = %d, want 1", s.RevealedCount())
	}
}

func TestGrantReveals(t *testing.T) {
	s := startSession(t)
	s.Reveals = 0
	s.GrantReveals(ShareRewardReveals)
	if s.Reveals != 2 {
		t.Errorf("reveals = %d, want 2 after share reward", s.Reveals)
	}
	s.GrantReveals(-5)
	if s.Reveals != 2 {
		t.Error("negative grants must be ignored")
	}
}

func TestReturnHomeDiscardsState(t *testing.T) {
	s := startSession(t)
	solveCard(t, s, 0)
	s.Tick()

	s.ReturnHome()
	if s.View != ViewHome || s.Deck != nil || s.Level != "" {
		t.Errorf("session state not discarded: %+v", s)
	}
	if s.Elapsed != 0 || s.Reveals != 0 {
		t.Error("timer/credits not cleared on return home")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := startSession(t)
	snap := s.Snapshot()

	solveCard(t, s, 0)
	if snap.Deck[0].Solved {
		t.Error("snapshot observed a later mutation")
	}
}

func TestNextUnsolved(t *testing.T) {
	deck := []Card{{Solved: true}, {}, {Solved: true}, {}}
	if got := NextUnsolved(deck, -1); got != 1 {
		t.Errorf("first unsolved = %d, want 1", got)
	}
	if got := NextUnsolved(deck, 1); got != 3 {
		t.Errorf("next after 1 = %d, want 3", got)
	}
	if got := NextUnsolved(deck, 3); got != 1 {
		t.Errorf("wrap after 3 = %d, want 1", got)
	}
	solvedAll := []Card{{Solved: true}, {Solved: true}}
	if got := NextUnsolved(solvedAll, 0); got != -1 {
		t.Errorf("all solved = %d, want -1", got)
	}
}
