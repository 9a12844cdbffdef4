package services_test

import (
	"context"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewCartService(repositories.NewMemoryCartStore(), mockRepo, zap.NewNop())

	lamp := &models.Product{ID: "1", Name: "Lamp", Price: decimal.RequireFromString("12.50"), Stock: 3}
	mockRepo.On("GetByID", "1").Return(lamp, nil)

	cart, err := service.AddToCart(ctx, "s1", "1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	cart, err = service.AddToCart(ctx, "s1", "1", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.Equal(t, "37.5", cart.TotalValue().String())

	// Exceeding stock leaves the cart untouched
	_, err = service.AddToCart(ctx, "s1", "1", 1)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)

	stored, err := service.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Lines[0].Quantity)
}

func TestCartService_AddToCart_Rejections(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewCartService(repositories.NewMemoryCartStore(), mockRepo, zap.NewNop())

	_, err := service.AddToCart(ctx, "s1", "1", 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	assert.Equal(t, services.KeyQuantityNotGreaterThanZero, services.ErrorKey(err))

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.AddToCart(ctx, "s1", "99", 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Equal(t, services.KeyProductNotFound, services.ErrorKey(err))
}

func TestCartService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewCartService(repositories.NewMemoryCartStore(), mockRepo, zap.NewNop())

	mockRepo.On("GetByID", "1").Return(&models.Product{ID: "1", Name: "A", Price: decimal.NewFromInt(1), Stock: 5}, nil)
	mockRepo.On("GetByID", "2").Return(&models.Product{ID: "2", Name: "B", Price: decimal.NewFromInt(2), Stock: 5}, nil)

	_, err := service.AddToCart(ctx, "s1", "1", 1)
	require.NoError(t, err)
	_, err = service.AddToCart(ctx, "s1", "2", 1)
	require.NoError(t, err)

	cart, err := service.RemoveFromCart(ctx, "s1", "1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "2", cart.Lines[0].ProductID)

	require.NoError(t, service.ClearCart(ctx, "s1"))
	cart, err = service.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCartService_AddToCart_ProductDeletedDuringAdd(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewCartService(repositories.NewMemoryCartStore(), mockRepo, zap.NewNop())

	lamp := &models.Product{ID: "1", Name: "Lamp", Price: decimal.RequireFromString("12.50"), Stock: 3}
	mockRepo.On("GetByID", "1").Return(lamp, nil).Once()
	mockRepo.On("GetByID", "1").Return(nil, fmt.Errorf("product with ID 1: %w", repositories.ErrProductNotFound)).Once()

	_, err := service.AddToCart(ctx, "s1", "1", 1)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	cart, err := service.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	mockRepo.AssertExpectations(t)
}
