package scraper

import (
	"fmt"
	"regexp"
	"strings"
)

// Demo data substituted when real extraction fails. Pure functions of the
// query/slug, so the same input always yields the same records.

const defaultReviewAuthor = "Client Deliveroo"

var slugCleanPattern = regexp.MustCompile(`[^a-z0-9-]+`)

// DemoListings returns the two synthetic restaurant cards for a query
func DemoListings(query string) []RestaurantListing {
	return []RestaurantListing{
		{
			Name:              fmt.Sprintf("Restaurant \"%s\" - Démo 1", query),
			Slug:              demoSlug(query, 1),
			ImageURL:          "https://images.unsplash.com/photo-1600891964599-f61ba0e24092?w=400",
			LinkURL:           "#",
			Rating:            "4.6",
			DeliveryTimeRange: "25-35 min",
		},
		{
			Name:              fmt.Sprintf("Restaurant \"%s\" - Démo 2", query),
			Slug:              demoSlug(query, 2),
			ImageURL:          "https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?w=400",
			LinkURL:           "#",
			Rating:            "4.8",
			DeliveryTimeRange: "20-30 min",
		},
	}
}

// DemoRating returns the synthetic rating summary for a slug. The source
// URL points at the real menu page so the client link stays usable.
func DemoRating(slug, menuURL string) RatingSummary {
	return RatingSummary{
		Rating:    4.7,
		Reviews:   128,
		SourceURL: menuURL,
	}
}

// demoSlug derives a stable slug for a demo record; demo cards have no
// real menu link to take a path segment from
func demoSlug(query string, n int) string {
	slug := strings.ToLower(strings.TrimSpace(query))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugCleanPattern.ReplaceAllString(slug, "")
	if slug == "" {
		slug = "restaurant"
	}
	return fmt.Sprintf("%s-demo-%d", slug, n)
}
