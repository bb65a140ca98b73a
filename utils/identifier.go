package utils

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsObjectIDHex reports whether s is a well-formed 24-hex-character
// ObjectID string.
func IsObjectIDHex(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// IdentifierFilter builds the lookup filter for dual-key addressing:
// a 24-hex string addresses by _id, anything else by slug. The two are
// mutually exclusive alternate keys.
func IdentifierFilter(identifier string) bson.M {
	if id, err := primitive.ObjectIDFromHex(identifier); err == nil {
		return bson.M{"_id": id}
	}
	return bson.M{"slug": identifier}
}
