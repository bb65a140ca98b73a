package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIdentifierFilterObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	filter := IdentifierFilter(id.Hex())

	require.Contains(t, filter, "_id")
	assert.Equal(t, id, filter["_id"])
	assert.NotContains(t, filter, "slug")
}

func TestIdentifierFilterSlug(t *testing.T) {
	filter := IdentifierFilter("nike-mercurial-vapor")

	require.Contains(t, filter, "slug")
	assert.Equal(t, "nike-mercurial-vapor", filter["slug"])
	assert.NotContains(t, filter, "_id")
}

func TestIdentifierFilterHexLookingSlug(t *testing.T) {
	// 23 hex chars is not a well-formed ObjectID, so it addresses by slug.
	filter := IdentifierFilter("0123456789abcdef0123456")
	assert.Contains(t, filter, "slug")
}

func TestIsObjectIDHex(t *testing.T) {
	assert.True(t, IsObjectIDHex(primitive.NewObjectID().Hex()))
	assert.False(t, IsObjectIDHex("adidas"))
	assert.False(t, IsObjectIDHex(""))
	assert.False(t, IsObjectIDHex("zzzzzzzzzzzzzzzzzzzzzzzz"))
}
