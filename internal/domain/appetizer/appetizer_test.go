package appetizer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEnvelope = `{
	"request": [
		{
			"id": 1,
			"name": "Asian Flank Steak",
			"description": "This perfectly thin cut just melts in your mouth.",
			"price": 8.99,
			"imageURL": "http://localhost:3000/images/appetizers/asian-flank-steak.jpg",
			"calories": 300,
			"protein": 14,
			"carbs": 0
		},
		{
			"id": 2,
			"name": "Buffalo Chicken Bites",
			"description": "Buffalicious bites of chicken & joy.",
			"price": 5.99,
			"imageURL": "",
			"calories": 280,
			"protein": 12,
			"carbs": 8
		}
	]
}`

func TestDecodeCatalog(t *testing.T) {
	items, err := DecodeCatalog([]byte(sampleEnvelope))
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Asian Flank Steak", first.Name)
	assert.Equal(t, "This perfectly thin cut just melts in your mouth.", first.Description)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("8.99")), "price: got %s", first.Price)
	assert.Equal(t, "http://localhost:3000/images/appetizers/asian-flank-steak.jpg", first.ImageURL)
	assert.Equal(t, 300, first.Calories)
	assert.Equal(t, 14, first.Protein)
	assert.Equal(t, 0, first.Carbs)

	// Server-provided order is preserved.
	assert.Equal(t, 2, items[1].ID)
	assert.Empty(t, items[1].ImageURL)
}

func TestDecodeCatalog_EmptyCatalog(t *testing.T) {
	items, err := DecodeCatalog([]byte(`{"request": []}`))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDecodeCatalog_MissingEnvelope(t *testing.T) {
	_, err := DecodeCatalog([]byte(`{"items": []}`))
	require.Error(t, err)
}

func TestDecodeCatalog_NotJSON(t *testing.T) {
	_, err := DecodeCatalog([]byte("not json"))
	require.Error(t, err)
}

func TestDecodeCatalog_WrongShape(t *testing.T) {
	_, err := DecodeCatalog([]byte(`{"request": [{"id": "one"}]}`))
	require.Error(t, err)
}

func TestEncodeCatalog_RoundTrip(t *testing.T) {
	in := []Appetizer{
		{
			ID:          7,
			Name:        "Rainbow Spring Roll",
			Description: "It's like eating a rainbow! So many flavors in one bite.",
			Price:       decimal.RequireFromString("7.99"),
			ImageURL:    "/images/appetizers/rainbow-spring-roll.jpg",
			Calories:    200,
			Protein:     8,
			Carbs:       20,
		},
	}

	out, err := DecodeCatalog(EncodeCatalog(in))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0].Name, out[0].Name)
	assert.True(t, in[0].Price.Equal(out[0].Price))
	assert.Equal(t, in[0].Carbs, out[0].Carbs)
}
