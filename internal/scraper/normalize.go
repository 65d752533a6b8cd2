package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// A rating is a single digit, a decimal comma or point, and a single
	// digit ("4,6" or "4.6"). The marketplace's scale is 0-5, so multi-digit
	// ratings are out of scope.
	ratingPattern = regexp.MustCompile(`[0-9][.,][0-9]`)

	digitRunPattern = regexp.MustCompile(`[0-9]+`)
)

// ParseRating extracts a numeric rating from free text, accepting both the
// French decimal comma and the point form. The boolean is false when no
// rating pattern matches or the value falls outside the 0-5 scale.
func ParseRating(text string) (float64, bool) {
	match := ratingPattern.FindString(text)
	if match == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(strings.Replace(match, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	if value < 0 || value > 5 {
		return 0, false
	}
	return value, true
}

// ParseReviewCount extracts the review count from text mentioning the
// review keyword ("avis"). The boolean is false when the keyword or the
// digits are absent; callers treat that as zero reviews, not as a failure.
func ParseReviewCount(text string) (int, bool) {
	if !strings.Contains(strings.ToLower(text), "avis") {
		return 0, false
	}

	match := digitRunPattern.FindString(text)
	if match == "" {
		return 0, false
	}

	count, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return count, true
}

// ResolveURL makes a scraped href absolute against the marketplace base URL
func ResolveURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}
