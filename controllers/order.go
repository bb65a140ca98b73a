package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/quangtu2509/FE-BE-THsport-sub001/middleware"
	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// OrderController handles order-related requests
type OrderController struct {
	Collection     *mongo.Collection
	CartCollection *mongo.Collection
	UserCollection *mongo.Collection
	EmailService   *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(db *mongo.Database, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Collection:     db.Collection("orders"),
		CartCollection: db.Collection("carts"),
		UserCollection: db.Collection("users"),
		EmailService:   emailService,
	}
}

type createOrderRequest struct {
	Items           []models.OrderItem `json:"items"`
	Total           *float64           `json:"total"`
	PaymentMethod   string             `json:"paymentMethod"`
	ShippingAddress models.Address     `json:"shippingAddress"`
	Notes           string             `json:"notes"`
}

// CreateOrder snapshots the submitted lines into an immutable order and
// clears the requester's cart. The submitted line data is trusted; there is
// no re-validation against live catalog prices or stock.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if len(req.Items) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "order items must not be empty")
		return
	}
	if req.Total == nil || *req.Total < 0 {
		utils.RespondError(w, http.StatusBadRequest, "total must be a non-negative number")
		return
	}

	now := time.Now()
	order := models.Order{
		UserID:          userID,
		Items:           req.Items,
		Total:           *req.Total,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := oc.Collection.InsertOne(ctx, order)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error creating order")
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	// Empty the cart in a second, independent write. A fault between the
	// two writes leaves a stale cart but a valid order.
	_, err = oc.CartCollection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"items":      []models.CartItem{},
		"updated_at": time.Now(),
	}})
	if err != nil {
		zap.L().Warn("order created but cart clear failed",
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err),
		)
	}

	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err == nil {
		if err := oc.EmailService.SendOrderConfirmationEmail(&user, &order); err != nil {
			zap.L().Warn("failed to send order confirmation email",
				zap.String("order_id", order.ID.Hex()),
				zap.Error(err),
			)
		}
	}

	utils.RespondJSON(w, http.StatusCreated, order)
}

// ListOrders retrieves orders, paginated and filterable by status.
// Owner-scoped unless the requester is an admin.
func (oc *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := bson.M{}
	if claims.Role != models.RoleAdmin {
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		filter["user_id"] = userID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidOrderStatus(status) {
			utils.RespondError(w, http.StatusBadRequest, "invalid order status")
			return
		}
		filter["status"] = status
	}

	oc.listOrders(w, r, filter)
}

// GetOrderHistory retrieves the requester's own orders, paginated
func (oc *OrderController) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	filter := bson.M{"user_id": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.IsValidOrderStatus(status) {
			utils.RespondError(w, http.StatusBadRequest, "invalid order status")
			return
		}
		filter["status"] = status
	}

	oc.listOrders(w, r, filter)
}

func (oc *OrderController) listOrders(w http.ResponseWriter, r *http.Request, filter bson.M) {
	page, limit := utils.ParsePagination(r, 12)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, err := oc.Collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting orders")
		return
	}

	opts := findPage(page, limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := oc.Collection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading orders")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":     orders,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetOrder retrieves a single order. Only the owner or an admin may read it.
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.Collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.RespondMongoError(w, err, "order not found")
		return
	}

	if !order.ReadableBy(claims.UserID, claims.Role) {
		utils.RespondError(w, http.StatusForbidden, "forbidden")
		return
	}

	utils.RespondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus lets an admin set the order status to any enum value.
// Transition edges are not enforced.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		utils.RespondError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = oc.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}},
		optionsReturnAfter(),
	).Decode(&order)
	if err != nil {
		utils.RespondMongoError(w, err, "order not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, order)
}

// CancelOrder lets the owner cancel their own order while it is still
// pending or confirmed
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.Collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.RespondMongoError(w, err, "order not found")
		return
	}
	if !order.OwnedBy(userID) {
		utils.RespondError(w, http.StatusForbidden, "forbidden")
		return
	}
	if !order.Cancellable() {
		utils.RespondError(w, http.StatusBadRequest, "only pending or confirmed orders can be cancelled")
		return
	}

	err = oc.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": models.OrderStatusCancelled, "updated_at": time.Now()}},
		optionsReturnAfter(),
	).Decode(&order)
	if err != nil {
		utils.RespondMongoError(w, err, "order not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order. Owner only, and only while pending.
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.Collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.RespondMongoError(w, err, "order not found")
		return
	}
	if !order.OwnedBy(userID) {
		utils.RespondError(w, http.StatusForbidden, "forbidden")
		return
	}
	if !order.Deletable() {
		utils.RespondError(w, http.StatusBadRequest, "only pending orders can be deleted")
		return
	}

	if _, err := oc.Collection.DeleteOne(ctx, bson.M{"_id": orderID}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error deleting order")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "order deleted",
		"id":      orderID.Hex(),
	})
}
