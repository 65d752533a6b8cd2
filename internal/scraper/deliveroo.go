package scraper

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Wapeq1/Test-Technique-Dokaa/config"
	"github.com/Wapeq1/Test-Technique-Dokaa/helpers"
	"github.com/Wapeq1/Test-Technique-Dokaa/logger"
	apperr "github.com/Wapeq1/Test-Technique-Dokaa/pkg/errors"
	"github.com/Wapeq1/Test-Technique-Dokaa/services/cache"
	"github.com/Wapeq1/Test-Technique-Dokaa/services/publisher"
)

// The three orchestrated operations. Search and rating degrade to demo data
// on any failure; reviews deliberately carry no fallback and surface fetch
// errors to the caller.
var (
	opSearch = Operation{
		Name:     "search",
		Profile:  helpers.ProfileSearch,
		Policy:   FallbackDemoData,
		BlockKey: "deliveroo_search_rate_limited",
	}
	opRating = Operation{
		Name:     "rating",
		Profile:  helpers.ProfileDetail,
		Policy:   FallbackDemoData,
		BlockKey: "deliveroo_menu_rate_limited",
	}
	opReviews = Operation{
		Name:     "reviews",
		Profile:  helpers.ProfileDetail,
		Policy:   FallbackNone,
		BlockKey: "deliveroo_menu_rate_limited",
	}
)

// Scraper orchestrates the fetch, extract and normalize pipeline for the
// Deliveroo pages. Nothing is shared between requests; every call runs its
// own sequence on local data.
type Scraper struct {
	cfg       *config.Config
	cacheSvc  cache.CacheService
	publisher publisher.Publisher
	profiles  Profiles

	// fetchFunc is swapped out in tests
	fetchFunc func(ctx context.Context, url string, profile helpers.HeaderProfile, timeout time.Duration) (io.Reader, error)
}

// New creates a scraper. The cache service and publisher are optional; a
// nil cache disables rate-limit blocking and a nil publisher disables
// scrape events.
func New(cfg *config.Config, cacheSvc cache.CacheService, pub publisher.Publisher) *Scraper {
	return &Scraper{
		cfg:       cfg,
		cacheSvc:  cacheSvc,
		publisher: pub,
		profiles:  DefaultProfiles(),
		fetchFunc: helpers.FetchPage,
	}
}

// SearchRestaurants scrapes the search-results page for a query. It never
// returns an empty result: fetch failures and selector misses are replaced
// by the demo listings.
func (s *Scraper) SearchRestaurants(ctx context.Context, query string) []RestaurantListing {
	log := logger.ForScraper(opSearch.Name)
	searchURL := s.cfg.SearchURL(query)
	log.Info().Str("url", searchURL).Msg("Scraping search results")

	doc, err := s.fetchDocument(ctx, searchURL, opSearch)
	if err != nil {
		if opSearch.Policy == FallbackDemoData {
			log.Warn().Err(err).Str("query", query).Msg("Search fetch failed, falling back to demo data")
			return DemoListings(query)
		}
		return nil
	}

	listings := ExtractListings(doc, s.profiles.Listing, s.cfg.DeliverooBaseURL)
	if len(listings) == 0 {
		emptyErr := apperr.NewExtractionEmpty(opSearch.Name, "no listing selector matched")
		if opSearch.Policy == FallbackDemoData {
			log.Warn().Err(emptyErr).Str("query", query).Msg("Falling back to demo data")
			return DemoListings(query)
		}
		return listings
	}

	log.Info().Int("count", len(listings)).Msg("Restaurants found")
	s.publishEvent(opSearch.Name, listings)
	return listings
}

// RestaurantRating scrapes the rating block of a restaurant's menu page.
// A summary always carries a rating: when none can be parsed the demo
// rating is substituted. A missing review count alone is not a failure and
// yields zero.
func (s *Scraper) RestaurantRating(ctx context.Context, slug string) RatingSummary {
	log := logger.ForScraper(opRating.Name)
	log.Info().Str("slug", slug).Msg("Scraping rating")

	summary, err := s.scrapeRating(ctx, slug)
	if err != nil && opRating.Policy == FallbackDemoData {
		log.Warn().Err(err).Str("slug", slug).Msg("Rating scrape failed, falling back to demo data")
		return DemoRating(slug, s.cfg.MenuURL(slug))
	}

	log.Info().
		Float64("rating", summary.Rating).
		Int("reviews", summary.Reviews).
		Msg("Rating scraped")
	s.publishEvent(opRating.Name, summary)
	return summary
}

// RestaurantReviews scrapes the review blocks of a restaurant's menu page.
// Fetch failures propagate and zero matched blocks yields an empty list;
// there is no demo substitute for reviews.
func (s *Scraper) RestaurantReviews(ctx context.Context, slug string) ([]Review, error) {
	log := logger.ForScraper(opReviews.Name)
	menuURL := s.cfg.MenuURL(slug)
	log.Info().Str("url", menuURL).Msg("Scraping reviews")

	doc, err := s.fetchDocument(ctx, menuURL, opReviews)
	if err != nil {
		if opReviews.Policy == FallbackDemoData {
			// Unreachable with the current policy table, kept so the
			// asymmetry stays a data choice rather than control flow
			return []Review{}, nil
		}
		return nil, err
	}

	reviews := ExtractReviews(doc, s.profiles.Review)
	log.Info().Int("count", len(reviews)).Msg("Reviews extracted")
	if len(reviews) > 0 {
		s.publishEvent(opReviews.Name, reviews)
	}
	return reviews, nil
}

// EnrichListings looks up the rating of every listing concurrently and
// fills in the normalized rating and review count. A failed lookup leaves
// that listing as extracted; one slow or broken menu page never fails the
// batch. Demo cards have no menu page and are skipped.
func (s *Scraper) EnrichListings(ctx context.Context, listings []RestaurantListing) []RestaurantListing {
	enriched := make([]RestaurantListing, len(listings))
	copy(enriched, listings)

	var wg sync.WaitGroup
	for i := range enriched {
		listing := &enriched[i]
		if listing.LinkURL == "#" || listing.Slug == "" {
			continue
		}

		wg.Add(1)
		go func(listing *RestaurantListing) {
			defer wg.Done()

			summary, err := s.scrapeRating(ctx, listing.Slug)
			if err != nil {
				logger.ForScraper(opRating.Name).Warn().
					Err(err).
					Str("slug", listing.Slug).
					Msg("Enrichment lookup failed, keeping listing as extracted")
				return
			}

			listing.Rating = strconv.FormatFloat(summary.Rating, 'f', 1, 64)
			listing.Reviews = summary.Reviews
		}(listing)
	}
	wg.Wait()

	return enriched
}

// scrapeRating runs the rating pipeline without any fallback step
func (s *Scraper) scrapeRating(ctx context.Context, slug string) (RatingSummary, error) {
	menuURL := s.cfg.MenuURL(slug)

	doc, err := s.fetchDocument(ctx, menuURL, opRating)
	if err != nil {
		return RatingSummary{}, err
	}

	ratingText, reviewCountText := ExtractRatingTexts(doc, s.profiles.Rating)
	if ratingText == "" {
		return RatingSummary{}, apperr.NewExtractionEmpty(opRating.Name, "no rating selector matched for "+slug)
	}

	rating, ok := ParseRating(ratingText)
	if !ok {
		return RatingSummary{}, apperr.NewParse(opRating.Name, "no numeric rating in "+strconv.Quote(ratingText))
	}

	// A restaurant can legitimately have a rating with zero reviews
	reviews, ok := ParseReviewCount(reviewCountText)
	if !ok {
		reviews = 0
	}

	return RatingSummary{
		Rating:    rating,
		Reviews:   reviews,
		SourceURL: menuURL,
	}, nil
}

// fetchDocument fetches a page and parses it into a goquery document,
// honoring any active rate-limit block for the operation
func (s *Scraper) fetchDocument(ctx context.Context, url string, op Operation) (*goquery.Document, error) {
	// Skip the fetch entirely while the upstream has us rate limited
	if s.cacheSvc != nil && op.BlockKey != "" {
		if _, err := s.cacheSvc.Get(op.BlockKey); err == nil {
			return nil, apperr.NewRateLimit(op.Name, "")
		}
	}

	reader, err := s.fetchFunc(ctx, url, op.Profile, s.cfg.FetchTimeout)
	if err != nil {
		if apperr.IsType(err, apperr.ErrorTypeRateLimit) && s.cacheSvc != nil && op.BlockKey != "" {
			blockSeconds := []byte(strconv.Itoa(int(s.cfg.RateLimitBlock / time.Second)))
			if setErr := s.cacheSvc.Set(op.BlockKey, blockSeconds, s.cfg.RateLimitBlock); setErr != nil {
				logger.ForCache().Warn().Err(setErr).Msg("Failed to set rate-limit block")
			}
		}
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, apperr.New(apperr.ErrorTypeParse, op.Name, "HTML parsing error", err)
	}
	return doc, nil
}

// publishEvent emits a scrape event for downstream consumers. Publishing is
// best effort and never fails the request.
func (s *Scraper) publishEvent(operation string, payload interface{}) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.ForPublisher().Warn().Err(err).Str("operation", operation).Msg("Failed to encode scrape event")
		return
	}

	if err := s.publisher.Publish("b64_"+operation, data); err != nil {
		logger.LogError("publisher", apperr.NewPublisher(operation, "publish failed", err),
			"Failed to publish scrape event for %s", operation)
		return
	}

	// Keep the event streams bounded after each publish
	if err := s.publisher.TrimStreams(); err != nil {
		logger.ForPublisher().Warn().Err(err).Str("operation", operation).Msg("Failed to trim event streams")
	}
}
