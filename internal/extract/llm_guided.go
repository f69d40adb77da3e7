package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/webharvest/review-scraper/internal/models"
)

var guidedRatingRe = regexp.MustCompile(`[1-5](?:[.,]\d)?`)

// ExtractWithSelectors applies a discovered SelectorSet against a page
// snapshot. This path makes no attempt at titles or authors; its value
// is picking up review bodies the selector library missed.
func ExtractWithSelectors(doc *goquery.Document, set models.SelectorSet) []models.Review {
	seen := make(map[string]struct{})
	var reviews []models.Review

	for _, containerSelector := range set.Containers {
		doc.Find(containerSelector).Each(func(_ int, box *goquery.Selection) {
			var text string
			for _, contentSelector := range set.Content {
				if text = Normalize(box.Find(contentSelector).First().Text()); text != "" {
					break
				}
			}
			if TokenCount(text) < 3 {
				return
			}
			if _, dup := seen[text]; dup {
				return
			}

			var stars *float64
			for _, ratingSelector := range set.Ratings {
				ratingEl := box.Find(ratingSelector).First()
				if ratingEl.Length() == 0 {
					continue
				}
				if m := guidedRatingRe.FindString(ratingEl.Text()); m != "" {
					if v, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64); err == nil {
						stars = models.Stars(v)
						break
					}
				}
			}

			seen[text] = struct{}{}
			reviews = append(reviews, models.Review{
				Title:    "Review",
				Text:     text,
				Stars:    stars,
				UserName: models.AnonymousReviewer,
			})
		})
	}

	return reviews
}
