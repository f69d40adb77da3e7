package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// filledStarSelector matches the "filled" star icons of the common
// review widgets; the match count is the rating.
const filledStarSelector = `[class*="star-full"], [class*="star"][class*="filled"], .spr-icon-star, [class*="yotpo-star-full"], [class*="rating"] .full`

// ratingAttributes are checked in order for a directly exposed numeric
// rating.
var ratingAttributes = []string{"data-rating", "data-score", "data-stars", "data-value"}

var (
	starTextRe   = regexp.MustCompile(`(?i)([1-5](?:[.,]\d)?)\s*(?:star|/\s*5|$)`)
	ratedTextRe  = regexp.MustCompile(`(?i)Rated\s+([1-5](?:[.,]\d)?)`)
	ratingTextRe = regexp.MustCompile(`(?i)Rating:\s*([1-5](?:[.,]\d)?)`)
	starGlyphRe  = regexp.MustCompile(`[★⭐✩✭]{1,5}`)
)

// StarsFrom infers a 0-5 rating from a review container. Strategies are
// tried in order (filled-star count, data attributes, text patterns);
// a value outside [0,5] is treated as no match and the next strategy
// runs. Returns false when nothing usable was found.
func StarsFrom(sel *goquery.Selection) (float64, bool) {
	if n := sel.Find(filledStarSelector).Length(); n > 0 && n <= 5 {
		return float64(n), true
	}

	for _, attr := range ratingAttributes {
		if raw, ok := sel.Attr(attr); ok {
			if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && v >= 0 && v <= 5 {
				return v, true
			}
		}
	}

	text := sel.Text()
	for _, re := range []*regexp.Regexp{starTextRe, ratedTextRe, ratingTextRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
			if err == nil && v >= 0 && v <= 5 {
				return v, true
			}
		}
	}
	if m := starGlyphRe.FindString(text); m != "" {
		return float64(utf8.RuneCountInString(m)), true
	}

	return 0, false
}
