package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwar28/rappiclone/pkg/domain/model"
)

func TestCart(t *testing.T) {
	var cart model.Cart
	tacos := model.CartItem{ProductID: uuid.New(), Name: "Tacos", Price: decimal.RequireFromString("4.50"), Quantity: 9}
	soda := model.CartItem{ProductID: uuid.New(), Name: "Soda", Price: decimal.RequireFromString("1.25")}

	assert.True(t, cart.Empty())

	cart.Add(tacos)
	cart.Add(tacos)
	cart.Add(soda)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.ItemCount())
	assert.True(t, decimal.RequireFromString("10.25").Equal(cart.Total()))

	cart.Remove(soda.ProductID)
	require.Len(t, cart.Items, 1)
	cart.Remove(tacos.ProductID)
	assert.Equal(t, 1, cart.ItemCount())

	cart.Clear()
	assert.True(t, cart.Empty())
	assert.True(t, decimal.Zero.Equal(cart.Total()))
}

func TestOrderStatusTransitions(t *testing.T) {
	all := []model.OrderStatus{model.Pending, model.Preparing, model.Delivering, model.Delivered}

	for i, from := range all {
		for j, to := range all {
			assert.Equal(t, j == i+1, from.CanTransitionTo(to), "%s -> %s", from, to)
			assert.Equal(t, i >= j, from.Reached(to), "%s reached %s", from, to)
		}
	}

	next, ok := model.Pending.Next()
	assert.True(t, ok)
	assert.Equal(t, model.Preparing, next)

	_, ok = model.Delivered.Next()
	assert.False(t, ok)
	assert.True(t, model.Delivered.Terminal())

	_, ok = model.ParseOrderStatus("cancelled")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, ok := model.ParseRole("business_owner")
	require.True(t, ok)
	assert.Equal(t, model.Owner, role)

	assert.Equal(t, model.Customer, model.Profile{Role: "unknown"}.EffectiveRole())
}
