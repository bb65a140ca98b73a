package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, "quantity must be at least 1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "quantity must be at least 1", decodeErrorBody(t, rec)["error"])
}

func TestRespondMongoErrorNoDocuments(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondMongoError(rec, mongo.ErrNoDocuments, "order not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order not found", decodeErrorBody(t, rec)["error"])
}

func TestRespondCreateErrorDuplicateKey(t *testing.T) {
	rec := httptest.NewRecorder()
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	RespondCreateError(rec, dup, "a brand with that name or slug already exists")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "a brand with that name or slug already exists", decodeErrorBody(t, rec)["error"])
}

func TestRespondCreateErrorUnknownFault(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondCreateError(rec, errors.New("connection reset"), "duplicate")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeErrorBody(t, rec)["error"])
}

func TestRespondMongoErrorUnknownFault(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondMongoError(rec, errors.New("connection reset"), "order not found")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeErrorBody(t, rec)["error"])
}
