package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/webharvest/review-scraper/internal/models"
)

const (
	minMaxCount = 10
	maxMaxCount = 100000
)

// Harvester runs one review harvest against a target URL.
type Harvester interface {
	Harvest(ctx context.Context, targetURL string, maxCount int) (*models.HarvestResult, error)
}

type Handlers struct {
	harvester       Harvester
	defaultMaxCount int
	logger          *slog.Logger
}

func NewHandlers(harvester Harvester, defaultMaxCount int, logger *slog.Logger) *Handlers {
	return &Handlers{
		harvester:       harvester,
		defaultMaxCount: defaultMaxCount,
		logger:          logger.With("component", "api"),
	}
}

// ReviewsResponse is the payload for a completed harvest.
type ReviewsResponse struct {
	ReviewsCount int             `json:"reviews_count"`
	Reviews      []models.Review `json:"reviews"`
}

// GetReviews handles GET /api/reviews?page=<url>&max_count=<n>&download=<bool>.
func (h *Handlers) GetReviews(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		h.respondError(w, http.StatusBadRequest, "page query parameter is required")
		return
	}
	target := raw
	if decoded, err := url.QueryUnescape(raw); err == nil {
		target = decoded
	}

	maxCount := h.defaultMaxCount
	if v := r.URL.Query().Get("max_count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < minMaxCount || n > maxMaxCount {
			h.respondError(w, http.StatusBadRequest,
				fmt.Sprintf("max_count must be an integer between %d and %d", minMaxCount, maxMaxCount))
			return
		}
		maxCount = n
	}

	download := false
	if v := r.URL.Query().Get("download"); v != "" {
		download, _ = strconv.ParseBool(v)
	}

	h.logger.Info("scraping reviews", "url", target, "max_count", maxCount)

	result, err := h.harvester.Harvest(r.Context(), target, maxCount)
	if err != nil {
		h.logger.Error("harvest failed", "url", target, "error", err)
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("error scraping reviews: %v", err))
		return
	}

	reviews := result.Reviews
	if reviews == nil {
		reviews = []models.Review{}
	}
	resp := ReviewsResponse{
		ReviewsCount: len(reviews),
		Reviews:      reviews,
	}

	if download {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, "failed to encode reviews")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", downloadFilename(target)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// downloadFilename derives the attachment name from the target's
// domain, e.g. "example.com_reviews.json".
func downloadFilename(target string) string {
	host := "reviews"
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = strings.TrimPrefix(u.Host, "www.")
	}
	return host + "_reviews.json"
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
