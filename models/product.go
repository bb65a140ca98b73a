package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Variant is one purchasable variation of a product.
type Variant struct {
	Size  string `bson:"size,omitempty" json:"size,omitempty"`
	Color string `bson:"color,omitempty" json:"color,omitempty"`
	Stock int    `bson:"stock" json:"stock"`
}

// Product represents a catalog product. Slug carries a unique index and is
// an alternate lookup key alongside the ObjectID.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	SKU         string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Brand       primitive.ObjectID `bson:"brand,omitempty" json:"brand,omitempty"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	Images      []string           `bson:"images" json:"images"`
	Variants    []Variant          `bson:"variants,omitempty" json:"variants,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	Rating      float64            `bson:"rating" json:"rating"`
	NumReviews  int                `bson:"num_reviews" json:"numReviews"`
	IsXakho     bool               `bson:"is_xakho" json:"isXakho"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// FirstImage returns the product's first image, or an empty string when the
// product has none. Cart lines snapshot this at add time.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
