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
	"golang.org/x/crypto/bcrypt"

	"github.com/quangtu2509/FE-BE-THsport-sub001/middleware"
	"github.com/quangtu2509/FE-BE-THsport-sub001/models"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// UserController handles user-related requests
type UserController struct {
	Collection *mongo.Collection
}

// NewUserController creates a new UserController
func NewUserController(db *mongo.Database) *UserController {
	return &UserController{
		Collection: db.Collection("users"),
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	// Decode the request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "username, email, password and name are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if a user with the same email or username already exists
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	count, err := uc.Collection.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"email": email},
		{"username": req.Username},
	}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusBadRequest, "email or username already taken")
		return
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error hashing password")
		return
	}

	now := time.Now()
	user := models.User{
		Username:  req.Username,
		Email:     email,
		Password:  string(hashedPassword),
		Name:      req.Name,
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := uc.Collection.InsertOne(ctx, user)
	if err != nil {
		utils.RespondCreateError(w, err, "email or username already taken")
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error generating token")
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	// Find the user; the response never distinguishes an unknown email
	// from a wrong password.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	err := uc.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(creds.Email)}).Decode(&user)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	if !user.IsActive {
		utils.RespondError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error generating token")
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.currentUser(w, r)
	if !ok {
		return
	}
	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile lets the authenticated user change name, email or password
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Email != "" {
		set["email"] = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "error hashing password")
			return
		}
		set["password"] = string(hashed)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	err = uc.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		optionsReturnAfter(),
	).Decode(&user)
	if err != nil {
		utils.RespondMongoError(w, err, "user not found")
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, user)
}

// ListUsers retrieves all users (Admin only)
func (uc *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := utils.ParsePagination(r, 20)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, err := uc.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error counting users")
		return
	}

	opts := findPage(page, limit).SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password": 0})
	cursor, err := uc.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error fetching users")
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error reading users")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"users":      users,
		"pagination": utils.NewPagination(page, limit, total),
	})
}

// UpdateUser lets an admin change a user's role or active flag
func (uc *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req struct {
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid input")
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Role != nil {
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			utils.RespondError(w, http.StatusBadRequest, "invalid role")
			return
		}
		set["role"] = *req.Role
	}
	if req.IsActive != nil {
		set["is_active"] = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	err = uc.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		optionsReturnAfter(),
	).Decode(&user)
	if err != nil {
		utils.RespondMongoError(w, err, "user not found")
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, user)
}

// DeleteUser removes a user account (Admin only)
func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := uc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "error deleting user")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "user deleted",
		"id":      id.Hex(),
	})
}

// currentUser loads the acting user from the claims in the request context.
func (uc *UserController) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	claims, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var user models.User
	if err := uc.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return nil, false
	}
	return &user, true
}
