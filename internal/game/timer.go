// internal/game/timer.go
//
// Timer is the owned ticking resource scoped to the playing view. The
// session manager starts one when a level begins and must stop it on every
// exit path from playing, completion mid-tick included. Stop is idempotent
// and guarantees no further callbacks once it returns to the caller's
// goroutine ordering.

package game

import (
	"sync"
	"time"
)

// Timer invokes fn once per interval until stopped.
type Timer struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewTimer starts a timer firing fn every interval on its own goroutine.
func NewTimer(interval time.Duration, fn func()) *Timer {
	t := &Timer{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()
	return t
}

// Stop releases the timer. Safe to call more than once.
func (t *Timer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
