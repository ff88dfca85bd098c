// internal/logos/logos.go
//
// Provides the logo entry pool for the quiz engine.
//
// Responsibilities:
//   - Load the entry pool from a remote CSV feed, a local file, or the
//     embedded default dataset.
//   - Expose the loaded pool and per-level counts to the rest of the app.
//
// Entry pool:
//   - Each entry carries an id, a difficulty level, an image path, one or
//     more accepted answers, and an optional hint.
//   - The first accepted answer is the canonical one shown on reveal.
//
// Initialization behavior (Init):
//   1. If LOGOS_FEED_URL is set, fetch the CSV over HTTP. A fetch or parse
//      failure fails soft: the pool stays empty for the whole process
//      lifetime and levels show up as unavailable. No retry.
//   2. If only LOGOS_FILE is set, load the CSV from disk.
//   3. If neither is set, fall back to the embedded default dataset from
//      the assets package.
//
// Environment variables:
//   LOGOS_FEED_URL=https://example.com/logos.csv
//   LOGOS_FILE=/path/to/logos.csv
//
// Constraints:
//   • Entries missing id, level, or image never enter the pool.
//   • Initialization is run once (sync.Once).

package logos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/kwtplay/logoquiz/assets"
)

// Level is the difficulty tag carried by each entry.
type Level string

const (
	LevelEasy   Level = "Easy"
	LevelMedium Level = "Medium"
	LevelHard   Level = "Hard"
)

// Valid reports whether l is one of the three known difficulty tags.
func (l Level) Valid() bool {
	return l == LevelEasy || l == LevelMedium || l == LevelHard
}

// Entry is one quiz item as sourced from the dataset.
type Entry struct {
	ID      string   `json:"id"`      // unique identifier, used for dedup
	Level   Level    `json:"level"`   // Easy | Medium | Hard
	Image   string   `json:"image"`   // displayable asset path (see SafeImagePath)
	Answers []string `json:"answers"` // accepted names; first is the revealed one
	Hint    string   `json:"hint"`    // optional free text
}

const fetchTimeout = 10 * time.Second

var (
	initOnce   sync.Once
	pool       []Entry
	initialErr error
)

// Init loads the entry pool exactly once.
// Transport and parse failures are reported back but always leave a usable
// (possibly empty) pool; callers log and carry on.
func Init(ctx context.Context) error {
	initOnce.Do(func() {
		feedURL := os.Getenv("LOGOS_FEED_URL")
		filePath := os.Getenv("LOGOS_FILE")

		switch {
		// Case 1: remote feed configured. A failure here means an empty
		// pool for the session, never a fallback to stale local data.
		case feedURL != "":
			text, err := fetchFeed(ctx, feedURL)
			if err != nil {
				initialErr = err
				return
			}
			pool = ParseCSV(text)

		// Case 2: local file configured.
		case filePath != "":
			b, err := os.ReadFile(filePath)
			if err != nil {
				initialErr = err
				return
			}
			pool = ParseCSV(string(b))

		// Case 3: embedded default dataset.
		default:
			pool = ParseCSV(assets.DefaultLogosCSV)
		}
	})
	return initialErr
}

// fetchFeed performs the one-shot HTTP GET for the CSV feed.
func fetchFeed(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("logos: feed returned %s", res.Status)
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Pool returns the loaded entry pool. Empty until Init has run, or forever
// if the configured feed was unreachable.
func Pool() []Entry {
	return pool
}

// SetPool replaces the pool; used by tests and tools.
func SetPool(entries []Entry) {
	pool = entries
}

// Stats returns the total entry count and the count per difficulty level.
func Stats() (total int, perLevel map[Level]int) {
	perLevel = map[Level]int{LevelEasy: 0, LevelMedium: 0, LevelHard: 0}
	for _, e := range pool {
		perLevel[e.Level]++
	}
	return len(pool), perLevel
}
