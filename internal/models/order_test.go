package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/dailycare/internal/models"
)

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		assert.True(t, models.ValidOrderStatus(s), s)
	}

	assert.False(t, models.ValidOrderStatus("refunded"))
	assert.False(t, models.ValidOrderStatus(""))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusShipped, true},
		{models.OrderStatusPending, models.OrderStatusDelivered, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusShipped, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, true},

		// Backward moves are never allowed.
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},
		{models.OrderStatusShipped, models.OrderStatusConfirmed, false},
		{models.OrderStatusDelivered, models.OrderStatusPending, false},

		// Terminal states accept nothing.
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed, false},

		// Self transitions are not a thing.
		{models.OrderStatusPending, models.OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
