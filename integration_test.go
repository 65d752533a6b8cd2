package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wapeq1/Test-Technique-Dokaa/config"
	"github.com/Wapeq1/Test-Technique-Dokaa/internal/api"
	"github.com/Wapeq1/Test-Technique-Dokaa/internal/scraper"
	"github.com/Wapeq1/Test-Technique-Dokaa/services/cache"
)

// Markup in the shape of the real marketplace pages
const searchPageHTML = `<!DOCTYPE html>
<html>
<body>
	<div class="results">
		<a href="/fr/menu/marseille/pizza-bella">
			<h3>Pizza Bella</h3>
			<img src="/img/pizza-bella.jpg" />
			<span data-testid="rating">4,6</span>
			<span data-testid="delivery-time">25-35 min</span>
		</a>
		<a href="/fr/menu/marseille/sushi-zen">
			<h3>Sushi Zen</h3>
			<img src="/img/sushi-zen.jpg" />
			<span data-testid="rating">4,8</span>
			<span data-testid="delivery-time">20-30 min</span>
		</a>
	</div>
</body>
</html>`

const menuPageHTML = `<!DOCTYPE html>
<html>
<body>
	<span data-testid="rating">4,6 sur 5</span>
	<span>(123 avis)</span>
	<div data-testid="review">
		<span class="UserName">Marie L.</span>
		<time datetime="2024-03-15">15 mars</time>
		<p class="CommentBody">Très bon</p>
		<svg aria-label="star"></svg>
		<svg aria-label="star"></svg>
		<svg aria-label="star"></svg>
		<svg aria-label="star"></svg>
	</div>
</body>
</html>`

func newTestStack(t *testing.T) (*httptest.Server, http.Handler) {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch {
		case strings.HasPrefix(r.URL.Path, "/fr/restaurants/"):
			w.Write([]byte(searchPageHTML))
		case strings.HasPrefix(r.URL.Path, "/fr/menu/"):
			w.Write([]byte(menuPageHTML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(upstream.Close)

	os.Setenv("DELIVEROO_BASE_URL", upstream.URL)
	t.Cleanup(func() { os.Unsetenv("DELIVEROO_BASE_URL") })

	cfg := config.LoadConfig()
	deliveroo := scraper.New(cfg, cache.NewMemoryService(), nil)
	router := api.NewRouter(api.NewHandler(deliveroo), cfg.CORSOrigin)

	return upstream, router
}

func get(t *testing.T, router http.Handler, path string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestIntegrationSearch(t *testing.T) {
	_, router := newTestStack(t)

	status, body := get(t, router, "/api/restaurant?query=pizza")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pizza", body["query"])
	assert.Equal(t, float64(2), body["count"])

	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	assert.Equal(t, "Pizza Bella", first["name"])
	assert.Equal(t, "pizza-bella", first["slug"])
	assert.Equal(t, "4,6", first["rating"])
	assert.Contains(t, first["linkUrl"], "/fr/menu/marseille/pizza-bella")
}

func TestIntegrationSearchEnriched(t *testing.T) {
	_, router := newTestStack(t)

	status, body := get(t, router, "/api/restaurant?query=pizza&enrich=true")
	assert.Equal(t, http.StatusOK, status)

	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	// The raw "4,6" card text is replaced by the normalized menu-page rating
	assert.Equal(t, "4.6", first["rating"])
	assert.Equal(t, float64(123), first["reviews"])
}

func TestIntegrationRating(t *testing.T) {
	upstream, router := newTestStack(t)

	status, body := get(t, router, "/api/restaurant/pizza-bella/rating")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pizza-bella", body["slug"])
	assert.Equal(t, 4.6, body["rating"])
	assert.Equal(t, float64(123), body["reviews"])
	assert.Equal(t, upstream.URL+"/fr/menu/marseille/pizza-bella", body["url"])
}

func TestIntegrationReviews(t *testing.T) {
	_, router := newTestStack(t)

	status, body := get(t, router, "/api/restaurant/pizza-bella/reviews")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])

	reviews := body["reviews"].([]interface{})
	first := reviews[0].(map[string]interface{})
	assert.Equal(t, "Marie L.", first["author"])
	assert.Equal(t, "2024-03-15", first["date"])
	assert.Equal(t, float64(4), first["starCount"])
}

func TestIntegrationSearchFallbackWhenUpstreamDown(t *testing.T) {
	upstream, router := newTestStack(t)
	upstream.Close()

	status, body := get(t, router, "/api/restaurant?query=pizza")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])

	results := body["results"].([]interface{})
	first := results[0].(map[string]interface{})
	assert.Equal(t, `Restaurant "pizza" - Démo 1`, first["name"])
}

func TestIntegrationReviewsErrorWhenUpstreamDown(t *testing.T) {
	upstream, router := newTestStack(t)
	upstream.Close()

	status, body := get(t, router, "/api/restaurant/pizza-bella/reviews")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to fetch restaurant reviews", body["error"])
}
