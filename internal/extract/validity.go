package extract

import "regexp"

// boilerplatePatterns match UI chrome that looks review-shaped but is
// not review content: section headings, call-to-action labels, badge
// text and result counters.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^reviews?$`),
	regexp.MustCompile(`(?i)^write a review$`),
	regexp.MustCompile(`(?i)^see reviews?$`),
	regexp.MustCompile(`(?i)^\d+\s+reviews?$`),
	regexp.MustCompile(`(?i)^verified\s+`),
	regexp.MustCompile(`(?i)^published`),
	regexp.MustCompile(`(?i)^see more`),
	regexp.MustCompile(`(?i)^read more`),
	regexp.MustCompile(`(?i)^showing`),
	regexp.MustCompile(`(?i)^customer reviews?$`),
}

// IsReviewText reports whether a normalized candidate body is plausible
// review content: non-empty, not boilerplate, and at least 3 tokens.
func IsReviewText(text string) bool {
	if text == "" {
		return false
	}
	for _, pattern := range boilerplatePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}
	return TokenCount(text) >= 3
}
