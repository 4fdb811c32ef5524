package gemini

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/newswire"
)

// entry is the loosely-typed shape the model returns per article. The "url"
// and "source_url" keys are both accepted since models drift between them.
type entry struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	SourceURL   string  `json:"source_url"`
	Summary     string  `json:"summary"`
	PublishedAt *string `json:"published_at"`
}

// wrapper is the object form some models produce despite being asked for a
// bare array.
type wrapper struct {
	Articles []entry `json:"articles"`
}

// ParseCandidates parses a model response into candidates. Parsing is a
// tagged fallback chain, not exception-driven: the raw text is tried as-is,
// then once more after a repair pass that strips markdown fencing and
// slices to the outermost JSON brackets. An object wrapping the array under
// an "articles" key is tolerated in both passes. The second return value
// counts entries dropped for missing a title or URL.
func ParseCandidates(raw, sourceName string) ([]newswire.Candidate, int, error) {
	entries, ok := decodeEntries(raw)
	if !ok {
		entries, ok = decodeEntries(RepairJSON(raw))
	}
	if !ok {
		return nil, 0, newswire.Errorf(newswire.EINTERNAL,
			"unparseable extraction response: %s", excerpt(raw))
	}

	var candidates []newswire.Candidate
	var incomplete int
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		url := strings.TrimSpace(e.URL)
		if url == "" {
			url = strings.TrimSpace(e.SourceURL)
		}
		if title == "" || url == "" {
			incomplete++
			continue
		}

		candidates = append(candidates, newswire.Candidate{
			Title:       title,
			Summary:     strings.TrimSpace(e.Summary),
			URL:         url,
			PublishedAt: parseDate(e.PublishedAt),
			SourceName:  sourceName,
		})
	}

	return candidates, incomplete, nil
}

// decodeEntries tries the array form, then the object-wrapped form.
func decodeEntries(raw string) ([]entry, bool) {
	var entries []entry
	if err := json.Unmarshal([]byte(raw), &entries); err == nil {
		return entries, true
	}

	var w wrapper
	if err := json.Unmarshal([]byte(raw), &w); err == nil && w.Articles != nil {
		return w.Articles, true
	}

	return nil, false
}

// RepairJSON strips markdown code fencing and slices the text to the
// outermost JSON array or object so that responses like
// "```json\n[...]\n```" or "Here you go: [...]" still parse.
func RepairJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Strip a leading fence with optional language tag and a trailing fence.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Slice from the first opening bracket to the matching last closing one.
	// Arrays are preferred since that is the requested shape.
	if start := strings.IndexByte(s, '['); start >= 0 {
		if end := strings.LastIndexByte(s, ']'); end > start {
			return s[start : end+1]
		}
	}
	if start := strings.IndexByte(s, '{'); start >= 0 {
		if end := strings.LastIndexByte(s, '}'); end > start {
			return s[start : end+1]
		}
	}

	return s
}

// dateLayouts are tried in order when parsing published_at values.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// parseDate parses a best-effort publication date. Absent or malformed
// dates yield nil rather than rejecting the candidate: the model's date
// extraction is unvetted and a missing date is not worth losing an article
// over.
func parseDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// excerpt bounds raw model output for inclusion in error messages.
func excerpt(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) > rawExcerptLen {
		return s[:rawExcerptLen] + "..."
	}
	return s
}
