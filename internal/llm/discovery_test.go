package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelectorResponse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		containers []string
		content    []string
		ratings    []string
	}{
		{
			name: "well formed reply",
			input: `CONTAINERS: [".review", "[data-review-id]"]
CONTENT: [".review-body"]
RATINGS: [".stars", "'.rating'"]`,
			containers: []string{".review", "[data-review-id]"},
			content:    []string{".review-body"},
			ratings:    []string{".stars", ".rating"},
		},
		{
			name: "single quotes",
			input: `CONTAINERS: ['.rev']
CONTENT: ['.rev-text']
RATINGS: []`,
			containers: []string{".rev"},
			content:    []string{".rev-text"},
		},
		{
			name: "selectors spill onto following lines",
			input: `CONTAINERS:
  [".review-card",
   ".review-tile"]
CONTENT: [".body"]
RATINGS: [".stars"]`,
			containers: []string{".review-card", ".review-tile"},
			content:    []string{".body"},
			ratings:    []string{".stars"},
		},
		{
			name: "prose around the labels",
			input: `Sure! Here are the selectors you asked for.
CONTAINERS: [".spr-review"]
Some explanation in between that should be ignored
CONTENT: [".spr-review-content-body"]
RATINGS: [".spr-starratings"]
Hope this helps!`,
			containers: []string{".spr-review"},
			content:    []string{".spr-review-content-body"},
			ratings:    []string{".spr-starratings"},
		},
		{
			name:  "no labels at all",
			input: "I could not find any reviews in this HTML.",
		},
		{
			name:  "empty reply",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ParseSelectorResponse(tt.input)
			assert.Equal(t, tt.containers, set.Containers)
			assert.Equal(t, tt.content, set.Content)
			assert.Equal(t, tt.ratings, set.Ratings)
		})
	}
}

func TestParseSelectorResponseUnquotedIgnored(t *testing.T) {
	set := ParseSelectorResponse("CONTAINERS: [.review, .card]")
	assert.Empty(t, set.Containers)
	assert.True(t, set.Empty())
}
