// internal/logos/csv.go
//
// CSV parsing for the logo dataset plus image path cleanup.
//
// Dataset contract:
//   - First line is a header naming columns: id, level, image, answers, hint.
//     Header position, not a fixed column order, decides the mapping;
//     unknown or missing columns read as empty strings.
//   - Fields may be quoted; commas inside quotes do not split the field.
//   - The answers cell holds one or more aliases separated by "|".
//   - Rows missing id, level, or image are dropped silently: this is a
//     tolerated-data-quality policy, not an error.
//   - Image paths are sanitized at ingest (SafeImagePath), so every entry
//     in the pool already carries a servable path.

package logos

import (
	"encoding/csv"
	"regexp"
	"strings"
)

// ParseCSV converts raw delimited text into a slice of entries.
// Malformed input never errors; unusable lines are skipped.
func ParseCSV(text string) []Entry {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	r.FieldsPerRecord = -1 // rows may be ragged
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}

	// Header names map columns to positions.
	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.TrimSpace(h)] = i
	}

	out := make([]Entry, 0, len(records)-1)
	for _, rec := range records[1:] {
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		e := Entry{
			ID:      get("id"),
			Level:   Level(get("level")),
			Image:   SafeImagePath(get("image")),
			Answers: splitAnswers(get("answers")),
			Hint:    get("hint"),
		}
		if e.ID == "" || e.Level == "" || e.Image == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// splitAnswers splits the "answers" cell on "|", trimming each alias and
// discarding empty ones.
func splitAnswers(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if a := strings.TrimSpace(p); a != "" {
			out = append(out, a)
		}
	}
	return out
}

var (
	schemeRe   = regexp.MustCompile(`(?i)^https?://`)
	dupSlashRe = regexp.MustCompile(`([^:]/)/+`)
)

// SafeImagePath makes image paths safe for serving:
// backslashes become forward slashes, a leading "public/" segment is
// stripped, local paths gain a leading slash, spaces are percent-encoded,
// and duplicate slashes are collapsed (except after a URL scheme).
func SafeImagePath(src string) string {
	s := strings.TrimSpace(src)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\`, "/")
	if strings.HasPrefix(strings.ToLower(s), "public/") {
		s = s[len("public"):] // keep the slash
	}
	if !schemeRe.MatchString(s) && !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	s = strings.ReplaceAll(s, " ", "%20")
	s = dupSlashRe.ReplaceAllString(s, "$1")
	return s
}
