package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// CartController handles cart-related requests
type CartController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewCartController creates a new CartController
func NewCartController(db *mongo.Database) *CartController {
	return &CartController{
		Collection:        db.Collection("carts"),
		ProductCollection: db.Collection("products"),
	}
}

// getOrCreateCart loads the user's cart, creating an empty one on first
// access.
func (cc *CartController) getOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := cc.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	cart = models.NewCart(userID)
	result, err := cc.Collection.InsertOne(ctx, cart)
	if err != nil {
		// Lost the race against a concurrent first access; load theirs.
		if mongo.IsDuplicateKeyError(err) {
			if err := cc.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
				return nil, err
			}
			return &cart, nil
		}
		return nil, err
	}
	cart.ID = result.InsertedID.(primitive.ObjectID)
	return &cart, nil
}

// saveCart persists the whole cart document in a single write, stamping
// updatedAt. Last write wins under concurrent mutation.
func (cc *CartController) saveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := cc.Collection.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{
		"items":      cart.Items,
		"updated_at": cart.UpdatedAt,
	}})
	return err
}

// GetCart retrieves the user's cart, creating it lazily
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := cc.getOrCreateCart(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error loading cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}

// AddItem adds a product to the user's cart, merging into an existing
// (product, size) line
func (cc *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID    string `json:"productId"`
		Quantity     int    `json:"quantity"`
		SelectedSize string `json:"selectedSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.ProductID == "" {
		utils.RespondError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity < 1 {
		utils.RespondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := cc.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		utils.RespondMongoError(w, err, "product not found")
		return
	}

	cart, err := cc.getOrCreateCart(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error loading cart")
		return
	}

	cart.AddItem(&product, req.Quantity, req.SelectedSize)
	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}

// UpdateItem changes the quantity of a cart line, addressed by line id
func (cc *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	params := mux.Vars(r)
	itemID, err := primitive.ObjectIDFromHex(params["itemId"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Quantity < 1 {
		utils.RespondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondMongoError(w, err, "cart not found")
		return
	}

	line := cart.LineByID(itemID)
	if line == nil {
		utils.RespondError(w, http.StatusNotFound, "cart item not found")
		return
	}
	line.Quantity = req.Quantity

	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}

// RemoveItem filters a line out of the cart by its id
func (cc *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	params := mux.Vars(r)
	itemID, err := primitive.ObjectIDFromHex(params["itemId"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.Collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondMongoError(w, err, "cart not found")
		return
	}

	cart.RemoveLine(itemID)
	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}

// ClearCart empties the cart. Idempotent: clearing an already-empty or
// not-yet-created cart still returns an empty cart.
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := actorID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cart, err := cc.getOrCreateCart(ctx, userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error loading cart")
		return
	}

	cart.Clear()
	if err := cc.saveCart(ctx, cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error clearing cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}
