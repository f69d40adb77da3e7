package llm

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/webharvest/review-scraper/internal/models"
)

// htmlLimit is the hard cap on how much page HTML is sent to the model.
const htmlLimit = 15000

const systemPrompt = "You're an expert at finding CSS selectors for reviews."

const taskPrompt = `Find CSS selectors for reviews in this HTML.
Look for:
1. Review container selectors
2. Review text selectors
3. Star rating selectors

Return ONLY selectors like this:
CONTAINERS: [selector1, selector2]
CONTENT: [selector1, selector2]
RATINGS: [selector1, selector2]`

// Options configure the OpenAI-backed discoverer.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIDiscoverer asks a chat model for candidate review selectors on
// a page. All failures are soft: a failed call or an unparseable reply
// yields an empty SelectorSet.
type OpenAIDiscoverer struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func NewOpenAIDiscoverer(opts Options, logger *slog.Logger) *OpenAIDiscoverer {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIDiscoverer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger.With("component", "selector_discovery"),
	}
}

// Discover sends the (truncated) page HTML to the model and parses the
// labeled selector lists out of its reply.
func (d *OpenAIDiscoverer) Discover(ctx context.Context, pageURL, html string) (models.SelectorSet, error) {
	if len(html) > htmlLimit {
		html = html[:htmlLimit]
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       d.model,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: taskPrompt},
			{Role: openai.ChatMessageRoleUser, Content: html},
		},
	})
	if err != nil {
		d.logger.Warn("selector discovery call failed", "error", err, "url", pageURL)
		return models.SelectorSet{}, nil
	}
	if len(resp.Choices) == 0 {
		d.logger.Warn("selector discovery returned no choices", "url", pageURL)
		return models.SelectorSet{}, nil
	}

	set := ParseSelectorResponse(resp.Choices[0].Message.Content)
	d.logger.Debug("discovered selectors",
		"url", pageURL,
		"containers", len(set.Containers),
		"content", len(set.Content),
		"ratings", len(set.Ratings))
	return set, nil
}

var quotedRe = regexp.MustCompile(`['"]([^'"]+)['"]`)

// ParseSelectorResponse parses the model's free-text reply. It scans
// line by line, switching the active list whenever a CONTAINERS: /
// CONTENT: / RATINGS: label appears, and collects quoted substrings
// into the active list. Anything malformed is simply skipped.
func ParseSelectorResponse(text string) models.SelectorSet {
	var set models.SelectorSet
	var active *[]string

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.Contains(line, "CONTAINERS:"):
			active = &set.Containers
			line = after(line, "CONTAINERS:")
		case strings.Contains(line, "CONTENT:"):
			active = &set.Content
			line = after(line, "CONTENT:")
		case strings.Contains(line, "RATINGS:"):
			active = &set.Ratings
			line = after(line, "RATINGS:")
		}
		if active == nil {
			continue
		}
		for _, m := range quotedRe.FindAllStringSubmatch(line, -1) {
			*active = append(*active, m[1])
		}
	}

	return set
}

func after(line, label string) string {
	if _, rest, ok := strings.Cut(line, label); ok {
		return rest
	}
	return line
}
