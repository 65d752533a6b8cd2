package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/Wapeq1/Test-Technique-Dokaa/helpers"
)

// RestaurantListing represents one restaurant card scraped from the
// search-results page. Rating and delivery time are kept as raw text at
// listing time; "N/A" marks an absent value.
type RestaurantListing struct {
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	ImageURL          string `json:"imageUrl"`
	LinkURL           string `json:"linkUrl"`
	Rating            string `json:"rating"`
	DeliveryTimeRange string `json:"deliveryTimeRange"`

	// Reviews is populated only by rating enrichment
	Reviews int `json:"reviews,omitempty"`
}

// RatingSummary represents the normalized rating block of a menu page.
// Rating is always present; extraction misses are replaced by demo data
// before a summary is surfaced.
type RatingSummary struct {
	Rating    float64 `json:"rating"`
	Reviews   int     `json:"reviews"`
	SourceURL string  `json:"url"`
}

// Review represents one customer review block of a menu page.
// StarCount is the number of matched star icons, not a parsed number;
// nil means no star markup was found at all.
type Review struct {
	Author    string  `json:"author"`
	Date      *string `json:"date"`
	Text      string  `json:"text"`
	StarCount *int    `json:"starCount"`
}

// FallbackPolicy selects what happens when fetching or extraction fails
type FallbackPolicy int

const (
	// FallbackDemoData substitutes deterministic demo records
	FallbackDemoData FallbackPolicy = iota
	// FallbackNone surfaces the failure to the caller
	FallbackNone
)

// Operation describes one orchestrated scrape pipeline: which header
// profile it fetches with, how it degrades, and the cache key under which
// upstream rate limiting blocks it.
type Operation struct {
	Name     string
	Profile  helpers.HeaderProfile
	Policy   FallbackPolicy
	BlockKey string
}

// ElementHandler extracts a single field value from a candidate node
type ElementHandler func(*goquery.Selection) string
