package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoListings(t *testing.T) {
	listings := DemoListings("pizza")
	require.Len(t, listings, 2)

	assert.Equal(t, `Restaurant "pizza" - Démo 1`, listings[0].Name)
	assert.Equal(t, "4.6", listings[0].Rating)
	assert.Equal(t, "25-35 min", listings[0].DeliveryTimeRange)
	assert.Equal(t, "#", listings[0].LinkURL)

	assert.Equal(t, `Restaurant "pizza" - Démo 2`, listings[1].Name)
	assert.Equal(t, "4.8", listings[1].Rating)
	assert.Equal(t, "20-30 min", listings[1].DeliveryTimeRange)

	// Same query, same records
	assert.Equal(t, listings, DemoListings("pizza"))
}

func TestDemoSlug(t *testing.T) {
	assert.Equal(t, "pizza-demo-1", demoSlug("pizza", 1))
	assert.Equal(t, "poke-bowl-demo-2", demoSlug("Poke Bowl", 2))
	assert.Equal(t, "restaurant-demo-1", demoSlug("???", 1))
}

func TestDemoRating(t *testing.T) {
	url := "https://deliveroo.fr/fr/menu/marseille/chez-marcel"
	rating := DemoRating("chez-marcel", url)

	assert.Equal(t, 4.7, rating.Rating)
	assert.Equal(t, 128, rating.Reviews)
	assert.Equal(t, url, rating.SourceURL)

	assert.Equal(t, rating, DemoRating("chez-marcel", url))
}
