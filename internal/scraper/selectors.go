package scraper

// Selector tables for the Deliveroo markup. The upstream pages are built
// from React components with generated class names, so every field is
// located through an ordered chain of patterns tried first-match-wins;
// markup drift is fixed here, not in the extraction logic.

// AttrSelector locates an attribute value: the first node matching
// Selector that carries Attr wins.
type AttrSelector struct {
	Selector string
	Attr     string
}

// ListingSelectors is the selector profile for restaurant cards on the
// search-results page.
type ListingSelectors struct {
	// Cards matches candidate card nodes
	Cards string
	// MenuMarker must appear in a candidate's link or the candidate is discarded
	MenuMarker string
	// Link locates the menu link, first-match-wins
	Link []AttrSelector
	// Name locates the restaurant name; the link's last path segment is the
	// final fallback
	Name []string
	// Image locates the card image
	Image []AttrSelector
	// Rating locates the raw rating text
	Rating []string
	// DeliveryTime locates the delivery-time range text
	DeliveryTime []string
}

// RatingSelectors is the selector profile for the rating block of a menu page
type RatingSelectors struct {
	// Rating locates the rating text, first-match-wins
	Rating []string
	// ReviewCount locates the "(123 avis)" text
	ReviewCount []string
}

// ReviewSelectors is the selector profile for review blocks of a menu page
type ReviewSelectors struct {
	// Blocks matches candidate review nodes
	Blocks string
	// Author locates the reviewer name
	Author []string
	// Date locates the ISO-8601 review date
	Date []AttrSelector
	// Text locates the review body
	Text []string
	// Stars matches star icons inside a block; the star count is the number
	// of matches
	Stars string
}

// Profiles bundles the three selector profiles
type Profiles struct {
	Listing ListingSelectors
	Rating  RatingSelectors
	Review  ReviewSelectors
}

// DefaultProfiles returns the selector tables for deliveroo.fr
func DefaultProfiles() Profiles {
	return Profiles{
		Listing: ListingSelectors{
			Cards:      `[data-testid="restaurant-card"], a[href*="/menu/"]`,
			MenuMarker: "/menu/",
			Link: []AttrSelector{
				{Selector: "", Attr: "href"},
				{Selector: `a[href*="/menu/"]`, Attr: "href"},
			},
			Name: []string{"h3", `[data-testid="restaurant-name"]`},
			Image: []AttrSelector{
				{Selector: "img", Attr: "src"},
				{Selector: "img", Attr: "data-src"},
			},
			Rating:       []string{`[data-testid="rating"]`, `[class*="Rating"]`},
			DeliveryTime: []string{`[data-testid="delivery-time"]`, `[class*="Time"]`},
		},
		Rating: RatingSelectors{
			Rating: []string{
				`[data-testid="rating"]`,
				`[class*="Rating"]`,
				`span:contains("sur 5")`,
			},
			ReviewCount: []string{`span:contains("avis")`},
		},
		Review: ReviewSelectors{
			Blocks: `[data-testid="review"], [class*="ReviewCard"]`,
			Author: []string{`[class*="User"]`},
			Date: []AttrSelector{
				{Selector: "time", Attr: "datetime"},
			},
			Text:  []string{`[class*="Comment"]`},
			Stars: `svg[aria-label*="star"]`,
		},
	}
}
