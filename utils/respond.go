package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// RespondJSON writes v as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError writes the uniform error body: {"error": message}.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondCreateError reshapes an insert fault: a duplicate-key violation
// becomes a 400 with the given message, anything else a generic 500.
// Inserts never produce ErrNoDocuments, so no not-found case exists here.
func RespondCreateError(w http.ResponseWriter, err error, dupMsg string) {
	if mongo.IsDuplicateKeyError(err) {
		RespondError(w, http.StatusBadRequest, dupMsg)
		return
	}
	RespondError(w, http.StatusInternalServerError, "internal server error")
}

// RespondMongoError reshapes datastore faults into the uniform error body:
// duplicate-key violations become 400, missing documents 404, anything else
// a generic 500.
func RespondMongoError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case mongo.IsDuplicateKeyError(err):
		RespondError(w, http.StatusBadRequest, "duplicate value for a unique field")
	case errors.Is(err, mongo.ErrNoDocuments):
		RespondError(w, http.StatusNotFound, notFoundMsg)
	default:
		RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
