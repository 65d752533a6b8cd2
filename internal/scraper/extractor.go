package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Wapeq1/Test-Technique-Dokaa/helpers"
)

// applyHandlers applies a series of handlers to a selection, short-circuiting
// on the first non-empty result
func applyHandlers(s *goquery.Selection, handlers []ElementHandler) string {
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if result := handler(s); result != "" {
			return result
		}
	}
	return ""
}

// firstText tries each selector in order and returns the first non-empty
// trimmed text. When a selector matches several nodes the first one wins.
func firstText(s *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		found := s.Find(sel).First()
		if found.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(found.Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstAttr tries each selector/attribute pair in order; an empty Selector
// reads the attribute off the candidate node itself.
func firstAttr(s *goquery.Selection, attrs []AttrSelector) string {
	for _, a := range attrs {
		target := s
		if a.Selector != "" {
			target = s.Find(a.Selector).First()
		}
		if target.Length() == 0 {
			continue
		}
		if value, ok := target.Attr(a.Attr); ok {
			if value = strings.TrimSpace(value); value != "" {
				return value
			}
		}
	}
	return ""
}

// ExtractListings applies the listing-card profile to a search-results page.
// Candidates without a menu link are discarded; everything else degrades
// field by field ("N/A" or empty) instead of erroring. Candidates sharing
// the same link are kept as-is: a page can legitimately show the same
// restaurant twice via sponsored placement.
func ExtractListings(doc *goquery.Document, p ListingSelectors, baseURL string) []RestaurantListing {
	var listings []RestaurantListing

	doc.Find(p.Cards).Each(func(_ int, s *goquery.Selection) {
		href := firstAttr(s, p.Link)
		if href == "" || !strings.Contains(href, p.MenuMarker) {
			return
		}

		name := applyHandlers(s, []ElementHandler{
			func(s *goquery.Selection) string { return firstText(s, p.Name) },
			func(*goquery.Selection) string { return helpers.SlugFromURL(href) },
		})

		rating := firstText(s, p.Rating)
		if rating == "" {
			rating = "N/A"
		}

		deliveryTime := firstText(s, p.DeliveryTime)
		if deliveryTime == "" {
			deliveryTime = "N/A"
		}

		listings = append(listings, RestaurantListing{
			Name:              name,
			Slug:              helpers.SlugFromURL(href),
			ImageURL:          firstAttr(s, p.Image),
			LinkURL:           ResolveURL(baseURL, href),
			Rating:            rating,
			DeliveryTimeRange: deliveryTime,
		})
	})

	return listings
}

// ExtractRatingTexts applies the rating profile to a menu page and returns
// the raw rating and review-count texts, either possibly empty.
func ExtractRatingTexts(doc *goquery.Document, p RatingSelectors) (string, string) {
	ratingText := firstText(doc.Selection, p.Rating)
	reviewCountText := firstText(doc.Selection, p.ReviewCount)
	return ratingText, reviewCountText
}

// ExtractReviews applies the review profile to a menu page. Zero matched
// blocks yields an empty slice, not an error.
func ExtractReviews(doc *goquery.Document, p ReviewSelectors) []Review {
	reviews := []Review{}

	doc.Find(p.Blocks).Each(func(_ int, s *goquery.Selection) {
		author := firstText(s, p.Author)
		if author == "" {
			author = defaultReviewAuthor
		}

		var date *string
		if d := firstAttr(s, p.Date); d != "" {
			date = &d
		}

		// Star ratings are rendered as repeated icon elements; the count of
		// matches is the rating
		var starCount *int
		if n := s.Find(p.Stars).Length(); n > 0 {
			starCount = &n
		}

		reviews = append(reviews, Review{
			Author:    author,
			Date:      date,
			Text:      firstText(s, p.Text),
			StarCount: starCount,
		})
	})

	return reviews
}
