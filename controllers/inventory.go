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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// InventoryController handles stock records (Admin only)
type InventoryController struct {
	Collection        *mongo.Collection
	ProductCollection *mongo.Collection
}

// NewInventoryController creates a new InventoryController
func NewInventoryController(db *mongo.Database) *InventoryController {
	return &InventoryController{
		Collection:        db.Collection("inventory"),
		ProductCollection: db.Collection("products"),
	}
}

// ListInventory retrieves stock records, paginated. With low=true only
// records at or below their threshold are returned.
func (ic *InventoryController) ListInventory(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("low") == "true" {
		filter["$expr"] = bson.M{"$lte": []string{"$quantity", "$low_stock_threshold"}}
	}

	page, limit := utils.ParsePagination(r, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, err := ic.Collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting inventory")
		return
	}

	cursor, err := ic.Collection.Find(ctx, filter, findPage(page, limit))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching inventory")
		return
	}
	defer cursor.Close(ctx)

	records := []models.Inventory{}
	if err := cursor.All(ctx, &records); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading inventory")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"inventory":  records,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetInventory retrieves the stock record for one product
func (ic *InventoryController) GetInventory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var record models.Inventory
	err = ic.Collection.FindOne(ctx, bson.M{"product_id": productID}).Decode(&record)
	if err != nil {
		utils.RespondMongoError(w, err, "inventory record not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}

// SetInventory upserts the absolute quantity and threshold for a product
func (ic *InventoryController) SetInventory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req struct {
		Quantity          *int `json:"quantity"`
		LowStockThreshold *int `json:"lowStockThreshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		utils.RespondError(w, http.StatusBadRequest, "quantity must be a non-negative number")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The stock record must reference a real product.
	count, err := ic.ProductCollection.CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count == 0 {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}

	set := bson.M{"quantity": *req.Quantity, "updated_at": time.Now()}
	if req.LowStockThreshold != nil {
		set["low_stock_threshold"] = *req.LowStockThreshold
	}

	var record models.Inventory
	err = ic.Collection.FindOneAndUpdate(ctx,
		bson.M{"product_id": productID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"product_id": productID}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&record)
	if err != nil {
		utils.RespondMongoError(w, err, "inventory record not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}

// AdjustInventory applies a delta to the quantity. The result must not go
// negative.
func (ic *InventoryController) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["productId"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req struct {
		Delta *int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Delta == nil || *req.Delta == 0 {
		utils.RespondError(w, http.StatusBadRequest, "delta must be a non-zero number")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Guard the non-negative invariant inside the filter so the decrement
	// is atomic on the document.
	filter := bson.M{"product_id": productID}
	if *req.Delta < 0 {
		filter["quantity"] = bson.M{"$gte": -*req.Delta}
	}

	var record models.Inventory
	err = ic.Collection.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{"quantity": *req.Delta}, "$set": bson.M{"updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&record)
	if err != nil {
		if *req.Delta < 0 {
			// Either the record is missing or the decrement would go
			// negative; disambiguate for the caller.
			count, cErr := ic.Collection.CountDocuments(ctx, bson.M{"product_id": productID})
			if cErr == nil && count > 0 {
				utils.RespondError(w, http.StatusBadRequest, "insufficient stock")
				return
			}
		}
		utils.RespondMongoError(w, err, "inventory record not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, record)
}
