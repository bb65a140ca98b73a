package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndParseJWT(t *testing.T) {
	JwtKey = []byte("test-secret")

	userID := primitive.NewObjectID().Hex()
	token, err := GenerateJWT(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestParseJWTRejectsTampering(t *testing.T) {
	JwtKey = []byte("test-secret")
	token, err := GenerateJWT(primitive.NewObjectID().Hex(), "user")
	require.NoError(t, err)

	_, err = ParseJWT(token + "x")
	assert.Error(t, err)

	JwtKey = []byte("other-secret")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	JwtKey = []byte("test-secret")
	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}
