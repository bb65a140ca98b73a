package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// BrandController handles brand-related requests
type BrandController struct {
	Collection *mongo.Collection
}

// NewBrandController creates a new BrandController
func NewBrandController(db *mongo.Database) *BrandController {
	return &BrandController{
		Collection: db.Collection("brands"),
	}
}

// GetBrands retrieves all brands
func (bc *BrandController) GetBrands(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := bc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching brands")
		return
	}
	defer cursor.Close(ctx)

	brands := []models.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading brands")
		return
	}

	utils.RespondJSON(w, http.StatusOK, brands)
}

// GetBrand retrieves a single brand by id or slug
func (bc *BrandController) GetBrand(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var brand models.Brand
	err := bc.Collection.FindOne(ctx, utils.IdentifierFilter(params["identifier"])).Decode(&brand)
	if err != nil {
		utils.RespondMongoError(w, err, "brand not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, brand)
}

// CreateBrand handles adding a new brand (Admin only)
func (bc *BrandController) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var brand models.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if brand.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if brand.Slug == "" {
		brand.Slug = slug.Make(brand.Name)
	}
	now := time.Now()
	brand.ID = primitive.NilObjectID
	brand.CreatedAt = now
	brand.UpdatedAt = now

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := bc.Collection.InsertOne(ctx, brand)
	if err != nil {
		utils.RespondCreateError(w, err, "a brand with that name or slug already exists")
		return
	}
	brand.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, brand)
}

// UpdateBrand handles updating a brand by id or slug (Admin only)
func (bc *BrandController) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var req struct {
		Name        *string `json:"name"`
		Slug        *string `json:"slug"`
		Description *string `json:"description"`
		Logo        *string `json:"logo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Slug != nil {
		set["slug"] = *req.Slug
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Logo != nil {
		set["logo"] = *req.Logo
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var brand models.Brand
	err := bc.Collection.FindOneAndUpdate(ctx,
		utils.IdentifierFilter(params["identifier"]),
		bson.M{"$set": set},
		optionsReturnAfter(),
	).Decode(&brand)
	if err != nil {
		utils.RespondMongoError(w, err, "brand not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, brand)
}

// DeleteBrand handles deleting a brand by id or slug (Admin only)
func (bc *BrandController) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := bc.Collection.DeleteOne(ctx, utils.IdentifierFilter(params["identifier"]))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error deleting brand")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "brand not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "brand deleted"})
}
