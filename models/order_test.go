package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusShipping,
		OrderStatusCompleted,
		OrderStatusCancelled,
	} {
		assert.True(t, IsValidOrderStatus(status), status)
	}

	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("Pending"))
	assert.False(t, IsValidOrderStatus("refunded"))
}

func TestOrderReadableBy(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	order := Order{UserID: owner}

	tests := []struct {
		name     string
		userID   string
		role     string
		readable bool
	}{
		{"owner", owner.Hex(), RoleUser, true},
		{"admin non-owner", stranger.Hex(), RoleAdmin, true},
		{"non-owner non-admin", stranger.Hex(), RoleUser, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.readable, order.ReadableBy(tt.userID, tt.role))
		})
	}
}

func TestOrderOwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	order := Order{UserID: owner}

	assert.True(t, order.OwnedBy(owner))
	assert.False(t, order.OwnedBy(primitive.NewObjectID()))
}

func TestOrderDeletable(t *testing.T) {
	tests := []struct {
		status    string
		deletable bool
	}{
		{OrderStatusPending, true},
		{OrderStatusConfirmed, false},
		{OrderStatusShipping, false},
		{OrderStatusCompleted, false},
		{OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			order := Order{Status: tt.status}
			assert.Equal(t, tt.deletable, order.Deletable())
		})
	}
}

func TestOrderCancellable(t *testing.T) {
	tests := []struct {
		status      string
		cancellable bool
	}{
		{OrderStatusPending, true},
		{OrderStatusConfirmed, true},
		{OrderStatusShipping, false},
		{OrderStatusCompleted, false},
		{OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			order := Order{Status: tt.status}
			assert.Equal(t, tt.cancellable, order.Cancellable())
		})
	}
}
