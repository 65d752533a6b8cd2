package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/Wapeq1/Test-Technique-Dokaa/helpers"
	"github.com/Wapeq1/Test-Technique-Dokaa/internal/scraper"
	"github.com/Wapeq1/Test-Technique-Dokaa/logger"
	apperr "github.com/Wapeq1/Test-Technique-Dokaa/pkg/errors"
)

// RestaurantScraper is the pipeline surface consumed by the HTTP layer
type RestaurantScraper interface {
	SearchRestaurants(ctx context.Context, query string) []scraper.RestaurantListing
	EnrichListings(ctx context.Context, listings []scraper.RestaurantListing) []scraper.RestaurantListing
	RestaurantRating(ctx context.Context, slug string) scraper.RatingSummary
	RestaurantReviews(ctx context.Context, slug string) ([]scraper.Review, error)
}

// Handler holds the HTTP handlers for the restaurant API
type Handler struct {
	scraper RestaurantScraper
}

// NewHandler creates a new API handler
func NewHandler(s RestaurantScraper) *Handler {
	return &Handler{scraper: s}
}

// Search handles GET /api/restaurant?query=...&enrich=true
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if strings.TrimSpace(query) == "" {
		rejectMissingParameter(w, "search", "query", map[string]interface{}{
			"error":   "Missing query parameter",
			"example": "/api/restaurant?query=pizza",
		})
		return
	}

	results := h.scraper.SearchRestaurants(r.Context(), query)
	if r.URL.Query().Get("enrich") == "true" {
		results = h.scraper.EnrichListings(r.Context(), results)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// Rating handles GET /api/restaurant/{slug}/rating
func (h *Handler) Rating(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if strings.TrimSpace(slug) == "" {
		rejectMissingParameter(w, "rating", "slug", map[string]interface{}{
			"error": "Missing slug parameter",
		})
		return
	}

	summary := h.scraper.RestaurantRating(r.Context(), slug)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"slug":    slug,
		"rating":  summary.Rating,
		"reviews": summary.Reviews,
		"url":     summary.SourceURL,
	})
}

// Reviews handles GET /api/restaurant/{slug}/reviews. Unlike search and
// rating, a scrape failure here surfaces as a 500.
func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if strings.TrimSpace(slug) == "" {
		rejectMissingParameter(w, "reviews", "slug", map[string]interface{}{
			"error": "Missing slug parameter",
		})
		return
	}

	reviews, err := h.scraper.RestaurantReviews(r.Context(), slug)
	if err != nil {
		logger.ForServer().Error().Err(err).Str("slug", slug).Msg("Reviews scrape failed")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Failed to fetch restaurant reviews",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"slug":    slug,
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// Info handles GET /api/restaurant/{slug}/info. No scraping is involved;
// the display name is derived from the slug.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if strings.TrimSpace(slug) == "" {
		rejectMissingParameter(w, "info", "slug", map[string]interface{}{
			"error": "Missing slug parameter",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"slug":    slug,
		"name":    helpers.TitleFromSlug(slug),
		"message": "Info endpoint - à étendre si besoin",
	})
}

// Health handles GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound handles every unmatched route
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error": "Route not found",
	})
}

// rejectMissingParameter answers 400 for a blank required parameter and
// logs the typed error for diagnostics
func rejectMissingParameter(w http.ResponseWriter, operation, param string, payload map[string]interface{}) {
	err := apperr.NewMissingParameter(operation, param+" parameter is required")
	logger.ForServer().Warn().Err(err).Msg("Rejecting request")
	writeJSON(w, http.StatusBadRequest, payload)
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
