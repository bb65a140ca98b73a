package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildProductFilterEmpty(t *testing.T) {
	assert.Empty(t, buildProductFilter(productFilter{}))
}

func TestBuildProductFilterCategoryAndBrand(t *testing.T) {
	categoryID := primitive.NewObjectID()
	brandID := primitive.NewObjectID()

	filter := buildProductFilter(productFilter{
		Category: categoryID.Hex(),
		Brand:    brandID.Hex(),
	})

	assert.Equal(t, categoryID, filter["category"])
	assert.Equal(t, brandID, filter["brand"])
}

func TestBuildProductFilterIgnoresMalformedRefs(t *testing.T) {
	filter := buildProductFilter(productFilter{Category: "shoes", Brand: "nike"})
	assert.NotContains(t, filter, "category")
	assert.NotContains(t, filter, "brand")
}

func TestBuildProductFilterPriceRange(t *testing.T) {
	min := 100000.0
	max := 500000.0

	filter := buildProductFilter(productFilter{MinPrice: &min, MaxPrice: &max})
	price, ok := filter["price"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, min, price["$gte"])
	assert.Equal(t, max, price["$lte"])

	lower := buildProductFilter(productFilter{MinPrice: &min})
	price = lower["price"].(bson.M)
	assert.Equal(t, min, price["$gte"])
	assert.NotContains(t, price, "$lte")
}

func TestBuildProductFilterSearch(t *testing.T) {
	filter := buildProductFilter(productFilter{Search: "mercurial"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)

	fields := []string{}
	for _, clause := range or {
		for field, v := range clause {
			fields = append(fields, field)
			regex, ok := v.(primitive.Regex)
			require.True(t, ok)
			assert.Equal(t, "mercurial", regex.Pattern)
			assert.Equal(t, "i", regex.Options)
		}
	}
	assert.ElementsMatch(t, []string{"name", "description", "sku"}, fields)
}

func TestBuildProductFilterXakho(t *testing.T) {
	yes := true
	filter := buildProductFilter(productFilter{Xakho: &yes})
	assert.Equal(t, true, filter["is_xakho"])
}

func TestRatingInRange(t *testing.T) {
	assert.True(t, ratingInRange(0))
	assert.True(t, ratingInRange(4.5))
	assert.True(t, ratingInRange(5))
	assert.False(t, ratingInRange(-0.1))
	assert.False(t, ratingInRange(5.1))
}

func TestParseProductSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, parseProductSort("price"))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, parseProductSort("-price"))
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, parseProductSort("name"))
	// Unknown or empty sorts fall back to newest first.
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, parseProductSort(""))
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, parseProductSort("rating"))
}
