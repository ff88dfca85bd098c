// internal/game/normalize.go
//
// Text normalization for answer matching. The same pipeline runs on both
// the typed text and every accepted alias, so comparison is tolerant of
// case, punctuation, and common corporate-suffix variation while staying
// strict on the core wording.
//
// Pipeline order matters: suffix stripping uses word boundaries that would
// shift if punctuation were removed first, so the non-letter sweep runs
// after the token steps.

package game

import (
	"regexp"
	"strings"

	"github.com/kwtplay/logoquiz/internal/logos"
)

var (
	companyRe = regexp.MustCompile(`\bco(mpany)?\b`)
	ltdRe     = regexp.MustCompile(`\bltd\b|\blimited\b`)
	incRe     = regexp.MustCompile(`\binc(orporated)?\b`)
	theRe     = regexp.MustCompile(`\bthe\b`)
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
	spacesRe  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a name for comparison:
//  1. lowercase
//  2. strip literal periods
//  3. "&" becomes the word "and"
//  4. "co"/"company" collapse to "company"; "ltd", "limited", "inc",
//     "incorporated", and "the" are stripped as standalone words
//  5. every rune that is not a Unicode letter, digit, or whitespace is
//     removed
//  6. whitespace runs collapse to single spaces, ends trimmed
//
// Normalize is idempotent.
func Normalize(s string) string {
	out := strings.ToLower(s)
	out = strings.ReplaceAll(out, ".", "")
	out = strings.ReplaceAll(out, "&", " and ")
	out = companyRe.ReplaceAllString(out, " company")
	out = ltdRe.ReplaceAllString(out, "")
	out = incRe.ReplaceAllString(out, "")
	out = theRe.ReplaceAllString(out, "")
	out = nonWordRe.ReplaceAllString(out, "")
	out = spacesRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Matches reports whether the typed text equals any accepted answer after
// normalization. Exact equality only, no fuzzy distance.
func Matches(e logos.Entry, typed string) bool {
	t := Normalize(typed)
	if t == "" {
		return false
	}
	for _, a := range e.Answers {
		if Normalize(a) == t {
			return true
		}
	}
	return false
}
