package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Completed and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// IsValidOrderStatus reports whether s is a member of the status enum.
// Transition edges are deliberately not enforced; any enum value may be
// written by an admin update.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a value-copy snapshot of a purchased cart line, decoupled
// from the live Product document so later catalog edits do not alter
// historical orders.
type OrderItem struct {
	ProductID    primitive.ObjectID `bson:"product_id" json:"productId"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	SelectedSize string             `bson:"selected_size,omitempty" json:"selectedSize,omitempty"`
	ImageURL     string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
}

// Order represents a user's order.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	ShippingAddress Address            `bson:"shipping_address" json:"shippingAddress"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// OwnedBy reports whether the given user owns the order.
func (o *Order) OwnedBy(userID primitive.ObjectID) bool {
	return o.UserID == userID
}

// ReadableBy reports whether the actor may read the order: the owner or
// an admin.
func (o *Order) ReadableBy(userID, role string) bool {
	return o.UserID.Hex() == userID || role == RoleAdmin
}

// Deletable reports whether the owner may still delete the order. Only
// pending orders are deletable.
func (o *Order) Deletable() bool {
	return o.Status == OrderStatusPending
}

// Cancellable reports whether the owner may still cancel the order.
func (o *Order) Cancellable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}
