package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quangtu2509/FE-BE-THsport-sub001/middleware"
	"github.com/quangtu2509/FE-BE-THsport-sub001/utils"
)

// actorID extracts the acting user's id from the claims attached by the
// auth middleware, writing a 401 on failure.
func actorID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}
	return id, true
}

// findPage builds the skip/limit options for one page of a list query.
func findPage(page, limit int64) *options.FindOptions {
	return options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
}

// optionsReturnAfter makes FindOneAndUpdate return the updated document.
func optionsReturnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
