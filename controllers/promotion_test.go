package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
)

func TestValidatePromotion(t *testing.T) {
	valid := models.Promotion{
		Code:         "SUMMER10",
		Discount:     10,
		DiscountType: models.DiscountPercentage,
		StartDate:    time.Now(),
		EndDate:      time.Now().Add(24 * time.Hour),
	}
	assert.Empty(t, validatePromotion(&valid))

	noCode := valid
	noCode.Code = ""
	assert.NotEmpty(t, validatePromotion(&noCode))

	badType := valid
	badType.DiscountType = "bogo"
	assert.NotEmpty(t, validatePromotion(&badType))

	over := valid
	over.Discount = 150
	assert.NotEmpty(t, validatePromotion(&over))

	fixedOver100 := valid
	fixedOver100.DiscountType = models.DiscountFixed
	fixedOver100.Discount = 50000
	assert.Empty(t, validatePromotion(&fixedOver100))

	negative := valid
	negative.DiscountType = models.DiscountFixed
	negative.Discount = -1
	assert.NotEmpty(t, validatePromotion(&negative))

	inverted := valid
	inverted.EndDate = valid.StartDate.Add(-time.Hour)
	assert.NotEmpty(t, validatePromotion(&inverted))
}

func TestPromotionUseFilterGuardsMaxUses(t *testing.T) {
	capped := models.Promotion{ID: primitive.NewObjectID(), MaxUses: 100}
	filter := promotionUseFilter(&capped)
	assert.Equal(t, capped.ID, filter["_id"])
	assert.Equal(t, bson.M{"$lt": 100}, filter["current_uses"])

	// Uncapped promotions match unconditionally.
	unlimited := models.Promotion{ID: primitive.NewObjectID(), MaxUses: 0}
	filter = promotionUseFilter(&unlimited)
	assert.Equal(t, unlimited.ID, filter["_id"])
	assert.NotContains(t, filter, "current_uses")
}
