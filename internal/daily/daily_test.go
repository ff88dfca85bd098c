package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	// 01:30 in UTC+3 is still the previous day in UTC; the key follows UTC.
	loc := time.FixedZone("AST", 3*60*60)
	local := time.Date(2026, 8, 28, 1, 30, 0, 0, loc)
	if got := DateKey(local); got != "2026-08-27" {
		t.Errorf("DateKey = %q, want UTC date 2026-08-27", got)
	}
}

func TestSeedDeterministicPerDate(t *testing.T) {
	day := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	later := time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC)

	h1, l1 := Seed(day, "salt")
	h2, l2 := Seed(later, "salt")
	if h1 != h2 || l1 != l2 {
		t.Error("same date must produce the same seed")
	}

	next := day.AddDate(0, 0, 1)
	h3, l3 := Seed(next, "salt")
	if h1 == h3 && l1 == l3 {
		t.Error("different dates should produce different seeds")
	}

	h4, l4 := Seed(day, "other-salt")
	if h1 == h4 && l1 == l4 {
		t.Error("different salts should produce different seeds")
	}
}
