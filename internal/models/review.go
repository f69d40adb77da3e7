package models

// AnonymousReviewer is used when no author could be extracted.
const AnonymousReviewer = "Anonymous"

// Review is a single customer review extracted from a page. Two reviews
// with the same Text are considered the same review regardless of the
// other fields.
type Review struct {
	Title    string   `json:"title"`
	Text     string   `json:"text"`
	Stars    *float64 `json:"stars"`
	UserName string   `json:"user_name"`
}

// SelectorSet holds the CSS selectors discovered for one page: review
// containers, review text inside a container, and rating elements.
// A set is derived per page and never reused unless the selector cache
// is enabled.
type SelectorSet struct {
	Containers []string `json:"containers"`
	Content    []string `json:"content"`
	Ratings    []string `json:"ratings"`
}

// Empty reports whether discovery produced nothing usable.
func (s SelectorSet) Empty() bool {
	return len(s.Containers) == 0
}

// HarvestResult is the outcome of one harvest run.
type HarvestResult struct {
	Reviews []Review
	// SuccessfulPages counts pages that contributed at least one review
	// not seen earlier in the run.
	SuccessfulPages int
}

func Stars(v float64) *float64 {
	return &v
}
