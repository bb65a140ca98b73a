package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// PromotionController handles promotion-related requests
type PromotionController struct {
	Collection *mongo.Collection
}

// NewPromotionController creates a new PromotionController
func NewPromotionController(db *mongo.Database) *PromotionController {
	return &PromotionController{
		Collection: db.Collection("promotions"),
	}
}

// promotionUseFilter addresses the promotion for consuming one use. With a
// use cap the filter only matches while current_uses is below it, so the
// increment stays within the cap under per-document atomicity.
func promotionUseFilter(p *models.Promotion) bson.M {
	filter := bson.M{"_id": p.ID}
	if p.MaxUses > 0 {
		filter["current_uses"] = bson.M{"$lt": p.MaxUses}
	}
	return filter
}

func validatePromotion(p *models.Promotion) string {
	if p.Code == "" {
		return "code is required"
	}
	if p.DiscountType != models.DiscountPercentage && p.DiscountType != models.DiscountFixed {
		return "discountType must be percentage or fixed"
	}
	if p.DiscountType == models.DiscountPercentage && (p.Discount < 0 || p.Discount > 100) {
		return "percentage discount must be between 0 and 100"
	}
	if p.Discount < 0 {
		return "discount must be non-negative"
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return "endDate must not precede startDate"
	}
	return ""
}

// GetPromotions retrieves all promotions (Admin only)
func (pc *PromotionController) GetPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching promotions")
		return
	}
	defer cursor.Close(ctx)

	promotions := []models.Promotion{}
	if err := cursor.All(ctx, &promotions); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading promotions")
		return
	}

	utils.RespondJSON(w, http.StatusOK, promotions)
}

// CreatePromotion handles adding a new promotion (Admin only)
func (pc *PromotionController) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var promo models.Promotion
	if err := json.NewDecoder(r.Body).Decode(&promo); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if msg := validatePromotion(&promo); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	promo.ID = primitive.NilObjectID
	promo.CurrentUses = 0
	promo.CreatedAt = now
	promo.UpdatedAt = now

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.InsertOne(ctx, promo)
	if err != nil {
		utils.RespondCreateError(w, err, "a promotion with that code already exists")
		return
	}
	promo.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, promo)
}

// UpdatePromotion handles updating a promotion (Admin only)
func (pc *PromotionController) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid promotion ID")
		return
	}

	var req struct {
		Code         *string    `json:"code"`
		Description  *string    `json:"description"`
		Discount     *float64   `json:"discount"`
		DiscountType *string    `json:"discountType"`
		MaxUses      *int       `json:"maxUses"`
		Active       *bool      `json:"active"`
		StartDate    *time.Time `json:"startDate"`
		EndDate      *time.Time `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Code != nil {
		set["code"] = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Discount != nil {
		if *req.Discount < 0 {
			utils.RespondError(w, http.StatusBadRequest, "discount must be non-negative")
			return
		}
		set["discount"] = *req.Discount
	}
	if req.DiscountType != nil {
		if *req.DiscountType != models.DiscountPercentage && *req.DiscountType != models.DiscountFixed {
			utils.RespondError(w, http.StatusBadRequest, "discountType must be percentage or fixed")
			return
		}
		set["discount_type"] = *req.DiscountType
	}
	if req.MaxUses != nil {
		set["max_uses"] = *req.MaxUses
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}
	if req.StartDate != nil {
		set["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		set["end_date"] = *req.EndDate
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var promo models.Promotion
	err = pc.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		optionsReturnAfter(),
	).Decode(&promo)
	if err != nil {
		utils.RespondMongoError(w, err, "promotion not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, promo)
}

// DeletePromotion handles deleting a promotion (Admin only)
func (pc *PromotionController) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid promotion ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error deleting promotion")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "promotion not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "promotion deleted"})
}

// ApplyPromotion computes the discount a code grants on a subtotal and
// consumes one use
func (pc *PromotionController) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string  `json:"code"`
		Subtotal float64 `json:"subtotal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Code == "" {
		utils.RespondError(w, http.StatusBadRequest, "code is required")
		return
	}
	if req.Subtotal < 0 {
		utils.RespondError(w, http.StatusBadRequest, "subtotal must be non-negative")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var promo models.Promotion
	err := pc.Collection.FindOne(ctx, bson.M{"code": strings.ToUpper(req.Code)}).Decode(&promo)
	if err != nil {
		utils.RespondMongoError(w, err, "promotion not found")
		return
	}

	if !promo.Usable(time.Now()) {
		utils.RespondError(w, http.StatusBadRequest, "promotion is not currently usable")
		return
	}

	discount := promo.Apply(req.Subtotal)

	// The max-uses guard rides in the update filter so concurrent applies
	// cannot drive current_uses past max_uses.
	result, err := pc.Collection.UpdateOne(ctx, promotionUseFilter(&promo), bson.M{
		"$inc": bson.M{"current_uses": 1},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error applying promotion")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusBadRequest, "promotion is not currently usable")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"code":     promo.Code,
		"discount": discount,
		"total":    req.Subtotal - discount,
	})
}
