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

// CategoryController handles category-related requests
type CategoryController struct {
	Collection *mongo.Collection
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(db *mongo.Database) *CategoryController {
	return &CategoryController{
		Collection: db.Collection("categories"),
	}
}

// GetCategories retrieves all categories
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := cc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching categories")
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading categories")
		return
	}

	utils.RespondJSON(w, http.StatusOK, categories)
}

// GetCategory retrieves a single category by id or slug
func (cc *CategoryController) GetCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var category models.Category
	err := cc.Collection.FindOne(ctx, utils.IdentifierFilter(params["identifier"])).Decode(&category)
	if err != nil {
		utils.RespondMongoError(w, err, "category not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, category)
}

// CreateCategory handles adding a new category (Admin only)
func (cc *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if category.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}
	now := time.Now()
	category.ID = primitive.NilObjectID
	category.CreatedAt = now
	category.UpdatedAt = now

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.InsertOne(ctx, category)
	if err != nil {
		utils.RespondCreateError(w, err, "a category with that name or slug already exists")
		return
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles updating a category by id or slug (Admin only)
func (cc *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var req struct {
		Name        *string `json:"name"`
		Slug        *string `json:"slug"`
		Description *string `json:"description"`
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var category models.Category
	err := cc.Collection.FindOneAndUpdate(ctx,
		utils.IdentifierFilter(params["identifier"]),
		bson.M{"$set": set},
		optionsReturnAfter(),
	).Decode(&category)
	if err != nil {
		utils.RespondMongoError(w, err, "category not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory handles deleting a category by id or slug (Admin only)
func (cc *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := cc.Collection.DeleteOne(ctx, utils.IdentifierFilter(params["identifier"]))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error deleting category")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "category not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
