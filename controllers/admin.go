package controllers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// AdminController serves the read-only dashboard rollups
type AdminController struct {
	ProductCollection *mongo.Collection
	OrderCollection   *mongo.Collection
	UserCollection    *mongo.Collection
}

// NewAdminController creates a new AdminController
func NewAdminController(db *mongo.Database) *AdminController {
	return &AdminController{
		ProductCollection: db.Collection("products"),
		OrderCollection:   db.Collection("orders"),
		UserCollection:    db.Collection("users"),
	}
}

// recentOrder is an order joined with its owner's name and email.
type recentOrder struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UserName  string             `bson:"user_name" json:"userName"`
	UserEmail string             `bson:"user_email" json:"userEmail"`
}

// GetStats returns the dashboard aggregates: entity counts, pending order
// count, completed revenue sum and the five most recent orders with the
// buyer joined in. Pure read, no side effects.
func (ac *AdminController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	totalProducts, err := ac.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting products")
		return
	}
	totalOrders, err := ac.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting orders")
		return
	}
	totalUsers, err := ac.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting users")
		return
	}
	pendingOrders, err := ac.OrderCollection.CountDocuments(ctx, bson.M{"status": models.OrderStatusPending})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting pending orders")
		return
	}

	// Revenue: sum of total across completed orders.
	revenue := 0.0
	revenueCursor, err := ac.OrderCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.OrderStatusCompleted}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}}},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error computing revenue")
		return
	}
	defer revenueCursor.Close(ctx)
	var revenueRows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := revenueCursor.All(ctx, &revenueRows); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading revenue")
		return
	}
	if len(revenueRows) > 0 {
		revenue = revenueRows[0].Revenue
	}

	// Five most recent orders with user name/email joined in.
	recentCursor, err := ac.OrderCollection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
		{{Key: "$limit", Value: 5}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{
			"total":      1,
			"status":     1,
			"created_at": 1,
			"user_name":  "$user.name",
			"user_email": "$user.email",
		}}},
	})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching recent orders")
		return
	}
	defer recentCursor.Close(ctx)
	recentOrders := []recentOrder{}
	if err := recentCursor.All(ctx, &recentOrders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading recent orders")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"totalProducts": totalProducts,
		"totalOrders":   totalOrders,
		"totalUsers":    totalUsers,
		"pendingOrders": pendingOrders,
		"revenue":       revenue,
		"recentOrders":  recentOrders,
	})
}
