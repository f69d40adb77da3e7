package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	truncMarkerRe = regexp.MustCompile(`(?i)read more|show more|see more`)
)

// Normalize cleans raw text extracted from the DOM: whitespace runs
// collapse to single spaces, everything from the first truncation
// marker ("read more" and friends) onward is dropped, and repeated
// 3-word phrases are collapsed so expanded/collapsed duplicates of the
// same review body normalize to one string.
func Normalize(raw string) string {
	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(raw, " "))
	if text == "" {
		return ""
	}

	if loc := truncMarkerRe.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[:loc[0]])
	}

	words := strings.Fields(text)
	var b strings.Builder
	for i, word := range words {
		if i+3 <= len(words) {
			phrase := strings.Join(words[i:i+3], " ")
			if strings.Contains(b.String(), phrase) {
				continue
			}
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}

	return b.String()
}

// TokenCount returns the number of whitespace-separated tokens.
func TokenCount(text string) int {
	return len(strings.Fields(text))
}
