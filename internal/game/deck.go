// internal/game/deck.go
//
// Deck construction: bucket the pool by difficulty, deduplicate by id,
// shuffle, and cap at the level's target size.
//
// Level targets:
//   Easy   → 12 cards drawn from the Easy bucket only.
//   Medium → 24 cards drawn from Easy ∪ Medium.
//   Hard   → 48 cards drawn from Easy ∪ Medium ∪ Hard.
//
// When fewer unique entries exist than the target, all of them are
// returned; the deck is never padded or repeated.

package game

import (
	"math/rand/v2"

	"github.com/kwtplay/logoquiz/internal/logos"
)

// Deck size targets per level.
const (
	EasyDeckSize   = 12
	MediumDeckSize = 24
	HardDeckSize   = 48
)

// BuildDeck samples a unique, shuffled subset of the pool for a level.
// The rng decides the shuffle order; pass a seeded one for a daily deck.
// An unknown level or an empty candidate set yields an empty deck, which
// callers report as the level being unavailable.
func BuildDeck(level logos.Level, pool []logos.Entry, rng *rand.Rand) []logos.Entry {
	var candidates []logos.Entry
	var target int

	switch level {
	case logos.LevelEasy:
		candidates = filterLevels(pool, logos.LevelEasy)
		target = EasyDeckSize
	case logos.LevelMedium:
		candidates = filterLevels(pool, logos.LevelEasy, logos.LevelMedium)
		target = MediumDeckSize
	case logos.LevelHard:
		candidates = filterLevels(pool, logos.LevelEasy, logos.LevelMedium, logos.LevelHard)
		target = HardDeckSize
	default:
		return nil
	}

	unique := uniqueByID(candidates)
	rng.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})
	if len(unique) > target {
		unique = unique[:target]
	}
	return unique
}

// filterLevels keeps pool entries whose level is in the allowed set.
func filterLevels(pool []logos.Entry, allowed ...logos.Level) []logos.Entry {
	var out []logos.Entry
	for _, e := range pool {
		for _, lvl := range allowed {
			if e.Level == lvl {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// uniqueByID drops duplicate ids, keeping the first occurrence.
func uniqueByID(entries []logos.Entry) []logos.Entry {
	seen := make(map[string]struct{}, len(entries))
	out := make([]logos.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}
