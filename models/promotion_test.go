package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activePromo(discountType string, discount float64) Promotion {
	now := time.Now()
	return Promotion{
		Code:         "SUMMER10",
		Discount:     discount,
		DiscountType: discountType,
		MaxUses:      100,
		Active:       true,
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.Add(time.Hour),
	}
}

func TestPromotionUsable(t *testing.T) {
	now := time.Now()

	p := activePromo(DiscountPercentage, 10)
	assert.True(t, p.Usable(now))

	inactive := activePromo(DiscountPercentage, 10)
	inactive.Active = false
	assert.False(t, inactive.Usable(now))

	notStarted := activePromo(DiscountPercentage, 10)
	notStarted.StartDate = now.Add(time.Hour)
	notStarted.EndDate = now.Add(2 * time.Hour)
	assert.False(t, notStarted.Usable(now))

	expired := activePromo(DiscountPercentage, 10)
	expired.StartDate = now.Add(-2 * time.Hour)
	expired.EndDate = now.Add(-time.Hour)
	assert.False(t, expired.Usable(now))

	exhausted := activePromo(DiscountPercentage, 10)
	exhausted.CurrentUses = exhausted.MaxUses
	assert.False(t, exhausted.Usable(now))

	// A zero EndDate means open-ended: a promotion created without an
	// end date stays usable.
	openEnded := activePromo(DiscountPercentage, 10)
	openEnded.EndDate = time.Time{}
	assert.True(t, openEnded.Usable(now))

	// MaxUses of zero means unlimited.
	unlimited := activePromo(DiscountPercentage, 10)
	unlimited.MaxUses = 0
	unlimited.CurrentUses = 9999
	assert.True(t, unlimited.Usable(now))
}

func TestPromotionApply(t *testing.T) {
	percent := activePromo(DiscountPercentage, 10)
	assert.Equal(t, 20000.0, percent.Apply(200000))

	fixed := activePromo(DiscountFixed, 50000)
	assert.Equal(t, 50000.0, fixed.Apply(200000))

	// A fixed discount never exceeds the subtotal.
	big := activePromo(DiscountFixed, 500000)
	assert.Equal(t, 200000.0, big.Apply(200000))
}
