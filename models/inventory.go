package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inventory tracks stock for one product. One record per product.
type Inventory struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID         primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity          int                `bson:"quantity" json:"quantity"`
	LowStockThreshold int                `bson:"low_stock_threshold" json:"lowStockThreshold"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// LowStock reports whether quantity has fallen to or below the threshold.
func (inv *Inventory) LowStock() bool {
	return inv.Quantity <= inv.LowStockThreshold
}
