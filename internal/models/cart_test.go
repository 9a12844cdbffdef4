package models_test

import (
	"testing"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price string) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price), Stock: 10}
}

func TestCart_AddItemMergesLines(t *testing.T) {
	cart := models.NewCart("session-1")

	cart.AddItem(product("p1", "10.00"), 2)
	cart.AddItem(product("p2", "5.50"), 1)
	cart.AddItem(product("p1", "10.00"), 3)

	require.Len(t, cart.Lines, 2)
	line := cart.FindLine("p1")
	require.NotNil(t, line)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, 6, cart.TotalQuantity())
	assert.Nil(t, cart.FindLine("missing"))
}

func TestCart_TotalAndAverageValue(t *testing.T) {
	cart := models.NewCart("session-1")
	assert.True(t, cart.TotalValue().IsZero())
	assert.True(t, cart.AverageValue().IsZero())

	cart.AddItem(product("p1", "10.00"), 2)
	cart.AddItem(product("p2", "4.00"), 2)

	assert.Equal(t, "28", cart.TotalValue().String())
	assert.Equal(t, "7", cart.AverageValue().String())
}

func TestCart_RemoveProduct(t *testing.T) {
	cart := models.NewCart("session-1")
	cart.AddItem(product("p1", "1"), 1)
	cart.AddItem(product("p2", "1"), 1)

	assert.True(t, cart.RemoveProduct("p1"))
	assert.False(t, cart.RemoveProduct("p1"))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p2", cart.Lines[0].ProductID)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := models.NewCart("session-1")
	cart.AddItem(product("p1", "1"), 1)

	clone := cart.Clone()
	clone.AddItem(product("p1", "1"), 4)

	assert.Equal(t, 1, cart.Lines[0].Quantity)
	assert.Equal(t, 5, clone.Lines[0].Quantity)
}
