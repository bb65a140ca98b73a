package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discount types for promotions.
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Promotion represents a discount code. Codes are stored uppercase and
// carry a unique index.
type Promotion struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code         string             `bson:"code" json:"code"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Discount     float64            `bson:"discount" json:"discount"`
	DiscountType string             `bson:"discount_type" json:"discountType"`
	MaxUses      int                `bson:"max_uses" json:"maxUses"`
	CurrentUses  int                `bson:"current_uses" json:"currentUses"`
	Active       bool               `bson:"active" json:"active"`
	StartDate    time.Time          `bson:"start_date" json:"startDate"`
	EndDate      time.Time          `bson:"end_date" json:"endDate"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Usable reports whether the promotion can be applied at the given time:
// active, inside its date window, and not exhausted. A zero EndDate means
// the promotion is open-ended.
func (p *Promotion) Usable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.StartDate) {
		return false
	}
	if !p.EndDate.IsZero() && now.After(p.EndDate) {
		return false
	}
	if p.MaxUses > 0 && p.CurrentUses >= p.MaxUses {
		return false
	}
	return true
}

// Apply returns the discount amount for the given subtotal. Percentage
// discounts never exceed the subtotal; fixed discounts are capped at it.
func (p *Promotion) Apply(subtotal float64) float64 {
	var off float64
	if p.DiscountType == DiscountPercentage {
		off = subtotal * p.Discount / 100
	} else {
		off = p.Discount
	}
	if off > subtotal {
		off = subtotal
	}
	return off
}
