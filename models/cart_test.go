package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestProduct(price float64) *Product {
	return &Product{
		ID:     primitive.NewObjectID(),
		Name:   "Nike Mercurial",
		Price:  price,
		Images: []string{"mercurial-1.jpg", "mercurial-2.jpg"},
	}
}

func TestAddItemMergesSameProductAndSize(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	product := newTestProduct(100000)

	cart.AddItem(product, 1, "42")
	cart.AddItem(product, 2, "42")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 100000.0, cart.Items[0].Price)
	assert.Equal(t, "mercurial-1.jpg", cart.Items[0].ImageURL)
}

func TestAddItemRefreshesPriceOnMerge(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	product := newTestProduct(100000)

	cart.AddItem(product, 1, "42")

	// Price changes in the catalog; the stored snapshot is overwritten,
	// never accumulated across price changes.
	product.Price = 80000
	cart.AddItem(product, 1, "42")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 80000.0, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItemDifferentSizeCreatesNewLine(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	product := newTestProduct(100000)

	cart.AddItem(product, 1, "42")
	cart.AddItem(product, 1, "43")

	require.Len(t, cart.Items, 2)
	assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
}

func TestAddItemAbsentSizeMatchesAbsentSize(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	product := newTestProduct(100000)

	cart.AddItem(product, 1, "")
	cart.AddItem(product, 1, "")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddItemDifferentProductsDoNotMerge(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())

	cart.AddItem(newTestProduct(100000), 1, "42")
	cart.AddItem(newTestProduct(200000), 1, "42")

	assert.Len(t, cart.Items, 2)
}

func TestLineByID(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	cart.AddItem(newTestProduct(100000), 1, "42")

	line := cart.LineByID(cart.Items[0].ID)
	require.NotNil(t, line)

	line.Quantity = 5
	assert.Equal(t, 5, cart.Items[0].Quantity)

	assert.Nil(t, cart.LineByID(primitive.NewObjectID()))
}

func TestRemoveLine(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	cart.AddItem(newTestProduct(100000), 1, "42")
	cart.AddItem(newTestProduct(200000), 1, "")

	removed := cart.Items[0].ID
	kept := cart.Items[1].ID

	cart.RemoveLine(removed)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, kept, cart.Items[0].ID)

	// Removing an absent line leaves the cart unchanged.
	cart.RemoveLine(removed)
	assert.Len(t, cart.Items, 1)
}

func TestClearIsIdempotent(t *testing.T) {
	cart := NewCart(primitive.NewObjectID())
	cart.AddItem(newTestProduct(100000), 2, "42")

	cart.Clear()
	require.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)

	// Clearing again is still an empty cart, never an error state.
	cart.Clear()
	require.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestFirstImageEmptyProduct(t *testing.T) {
	p := &Product{}
	assert.Equal(t, "", p.FirstImage())
}
