package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a user's cart, keyed by (product, selectedSize).
// Price is a snapshot of the product's price at the time of the most recent
// add, not a live reference.
type CartItem struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	ProductID    primitive.ObjectID `bson:"product_id" json:"productId"`
	Name         string             `bson:"name" json:"name"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Price        float64            `bson:"price" json:"price"`
	SelectedSize string             `bson:"selected_size,omitempty" json:"selectedSize,omitempty"`
	ImageURL     string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// Cart represents a user's shopping cart. One cart per user, enforced by a
// unique index on user_id; created lazily on first access.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// NewCart returns an empty cart for the given user.
func NewCart(userID primitive.ObjectID) Cart {
	now := time.Now()
	return Cart{
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MatchLine returns the index of the line matching (productID, size), or -1.
// An absent/empty size on both sides counts as a match.
func (c *Cart) MatchLine(productID primitive.ObjectID, size string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.SelectedSize == size {
			return i
		}
	}
	return -1
}

// AddItem merges quantity into an existing (product, size) line, refreshing
// the stored unit price to the product's current price, or appends a new
// line snapshotting the current price and first image.
func (c *Cart) AddItem(product *Product, quantity int, size string) {
	if i := c.MatchLine(product.ID, size); i >= 0 {
		c.Items[i].Quantity += quantity
		c.Items[i].Price = product.Price
		return
	}
	c.Items = append(c.Items, CartItem{
		ID:           primitive.NewObjectID(),
		ProductID:    product.ID,
		Name:         product.Name,
		Quantity:     quantity,
		Price:        product.Price,
		SelectedSize: size,
		ImageURL:     product.FirstImage(),
	})
}

// LineByID returns a pointer to the line with the given id, or nil.
func (c *Cart) LineByID(itemID primitive.ObjectID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// RemoveLine filters out the line with the given id. A missing line leaves
// the cart unchanged.
func (c *Cart) RemoveLine(itemID primitive.ObjectID) {
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	c.Items = items
}
