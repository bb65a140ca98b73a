package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// ProductController handles product-related requests
type ProductController struct {
	Collection         *mongo.Collection
	BrandCollection    *mongo.Collection
	CategoryCollection *mongo.Collection
}

// NewProductController creates a new ProductController
func NewProductController(db *mongo.Database) *ProductController {
	return &ProductController{
		Collection:         db.Collection("products"),
		BrandCollection:    db.Collection("brands"),
		CategoryCollection: db.Collection("categories"),
	}
}

// productFilter holds the independently-optional list predicates.
type productFilter struct {
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Xakho    *bool
}

// buildProductFilter composes the predicates into one Mongo filter. The
// search term matches name, description and SKU case-insensitively,
// combined with OR.
func buildProductFilter(f productFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		if id, err := primitive.ObjectIDFromHex(f.Category); err == nil {
			filter["category"] = id
		}
	}
	if f.Brand != "" {
		if id, err := primitive.ObjectIDFromHex(f.Brand); err == nil {
			filter["brand"] = id
		}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	if f.Xakho != nil {
		filter["is_xakho"] = *f.Xakho
	}
	if f.Search != "" {
		regex := primitive.Regex{Pattern: f.Search, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": regex},
			{"description": regex},
			{"sku": regex},
		}
	}
	return filter
}

// parseProductSort maps the sort query value to a Mongo sort document.
// A leading '-' means descending; newest-first is the default.
func parseProductSort(sort string) bson.D {
	switch sort {
	case "price":
		return bson.D{{Key: "price", Value: 1}}
	case "-price":
		return bson.D{{Key: "price", Value: -1}}
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	case "-name":
		return bson.D{{Key: "name", Value: -1}}
	case "createdAt":
		return bson.D{{Key: "created_at", Value: 1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// GetProducts retrieves products with filtering, sorting and pagination
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := productFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Search:   q.Get("search"),
	}
	if raw := q.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		f.MinPrice = &v
	}
	if raw := q.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		f.MaxPrice = &v
	}
	if raw := q.Get("xakho"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "invalid xakho flag")
			return
		}
		f.Xakho = &v
	}

	filter := buildProductFilter(f)
	page, limit := utils.ParsePagination(r, 12)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, err := pc.Collection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting products")
		return
	}

	opts := findPage(page, limit).SetSort(parseProductSort(q.Get("sort")))
	cursor, err := pc.Collection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"products":   products,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// GetProduct retrieves a single product by id or slug
func (pc *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := pc.Collection.FindOne(ctx, utils.IdentifierFilter(params["identifier"])).Decode(&product)
	if err != nil {
		utils.RespondMongoError(w, err, "product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

type productRequest struct {
	Name        *string          `json:"name"`
	Slug        string           `json:"slug"`
	SKU         *string          `json:"sku"`
	Description *string          `json:"description"`
	Price       *float64         `json:"price"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	Variants    []models.Variant `json:"variants"`
	Stock       *int             `json:"stock"`
	Rating      *float64         `json:"rating"`
	IsXakho     *bool            `json:"isXakho"`
	IsActive    *bool            `json:"isActive"`
}

// ratingInRange reports whether a rating satisfies the catalog's [0,5]
// range.
func ratingInRange(v float64) bool {
	return v >= 0 && v <= 5
}

// resolveRef turns a brand/category value into an ObjectID. A well-formed
// 24-hex string is taken as the id; anything else falls back to a
// lookup-by-name in the given collection.
func resolveRef(ctx context.Context, coll *mongo.Collection, value string) (primitive.ObjectID, error) {
	if id, err := primitive.ObjectIDFromHex(value); err == nil {
		return id, nil
	}
	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := coll.FindOne(ctx, bson.M{"name": value}).Decode(&doc); err != nil {
		return primitive.NilObjectID, err
	}
	return doc.ID, nil
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	// Decode the request body into product fields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Name == nil || *req.Name == "" || req.Price == nil || req.Category == "" {
		utils.RespondError(w, http.StatusBadRequest, "name, price and category are required")
		return
	}
	if *req.Price < 0 {
		utils.RespondError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	categoryID, err := resolveRef(ctx, pc.CategoryCollection, req.Category)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "category not found")
		return
	}

	now := time.Now()
	product := models.Product{
		Name:      *req.Name,
		Slug:      req.Slug,
		Price:     *req.Price,
		Category:  categoryID,
		Images:    req.Images,
		Variants:  req.Variants,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if product.Slug == "" {
		product.Slug = slug.Make(product.Name)
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Rating != nil {
		if !ratingInRange(*req.Rating) {
			utils.RespondError(w, http.StatusBadRequest, "rating must be between 0 and 5")
			return
		}
		product.Rating = *req.Rating
	}
	if req.IsXakho != nil {
		product.IsXakho = *req.IsXakho
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.Brand != "" {
		brandID, err := resolveRef(ctx, pc.BrandCollection, req.Brand)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, "brand not found")
			return
		}
		product.Brand = brandID
	}

	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		utils.RespondCreateError(w, err, "a product with that slug already exists")
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles updating a product by id or slug (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Slug != "" {
		set["slug"] = req.Slug
	}
	if req.SKU != nil {
		set["sku"] = *req.SKU
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondError(w, http.StatusBadRequest, "price must be non-negative")
			return
		}
		set["price"] = *req.Price
	}
	if req.Rating != nil {
		if !ratingInRange(*req.Rating) {
			utils.RespondError(w, http.StatusBadRequest, "rating must be between 0 and 5")
			return
		}
		set["rating"] = *req.Rating
	}
	if req.Images != nil {
		set["images"] = req.Images
	}
	if req.Variants != nil {
		set["variants"] = req.Variants
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.IsXakho != nil {
		set["is_xakho"] = *req.IsXakho
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}
	if req.Category != "" {
		categoryID, err := resolveRef(ctx, pc.CategoryCollection, req.Category)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, "category not found")
			return
		}
		set["category"] = categoryID
	}
	if req.Brand != "" {
		brandID, err := resolveRef(ctx, pc.BrandCollection, req.Brand)
		if err != nil {
			utils.RespondError(w, http.StatusNotFound, "brand not found")
			return
		}
		set["brand"] = brandID
	}

	var product models.Product
	err := pc.Collection.FindOneAndUpdate(ctx,
		utils.IdentifierFilter(params["identifier"]),
		bson.M{"$set": set},
		optionsReturnAfter(),
	).Decode(&product)
	if err != nil {
		utils.RespondMongoError(w, err, "product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// DeleteProduct handles deleting a product by id or slug (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.DeleteOne(ctx, utils.IdentifierFilter(params["identifier"]))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error deleting product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
