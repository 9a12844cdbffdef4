package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var checkoutForm = models.OrderViewModel{Name: "Jane", Address: "1 Main Street", City: "Paris", Zip: "75001", Country: "France"}

func seedCart(t *testing.T, carts repositories.CartStore, sessionID string, items map[*models.Product]int) {
	t.Helper()
	cart := models.NewCart(sessionID)
	for p, qty := range items {
		cart.AddItem(*p, qty)
	}
	require.NoError(t, carts.Save(context.Background(), cart))
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()
	mockProducts := new(MockProductRepository)
	mockOrders := new(MockOrderRepository)
	mockMQ := new(MockPublisher)
	carts := repositories.NewMemoryCartStore()
	service := services.NewOrderService(mockOrders, mockProducts, carts, mockMQ, zap.NewNop())

	laptop := &models.Product{ID: "1", Name: "Laptop", Price: decimal.RequireFromString("1000"), Stock: 5}
	mouse := &models.Product{ID: "2", Name: "Mouse", Price: decimal.RequireFromString("25.50"), Stock: 10}
	seedCart(t, carts, "s1", map[*models.Product]int{laptop: 1, mouse: 2})

	mockProducts.On("GetByID", "1").Return(laptop, nil).Once()
	mockProducts.On("GetByID", "2").Return(mouse, nil).Once()
	mockProducts.On("DecrementStock", "1", 1).Return(nil).Once()
	mockProducts.On("DecrementStock", "2", 2).Return(nil).Once()
	mockOrders.On("Create", mock.MatchedBy(func(o *models.Order) bool {
		return o.Name == "Jane" && o.UserID == "user-1" && len(o.Lines) == 2 && o.Status == models.OrderStatusPending
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Order).ID = "order-1"
	}).Return(nil).Once()
	mockMQ.On("Publish", "store", services.EventOrderCreated, mock.MatchedBy(func(body []byte) bool {
		var event services.OrderCreatedEvent
		return json.Unmarshal(body, &event) == nil && event.OrderID == "order-1" && event.Lines == 2
	})).Return(nil).Once()

	order, err := service.Checkout(ctx, "s1", "user-1", checkoutForm)
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, "1051", order.TotalAmount.String())

	cart, err := carts.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	mockProducts.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	service := services.NewOrderService(mockOrders, new(MockProductRepository), repositories.NewMemoryCartStore(), nil, zap.NewNop())

	_, err := service.Checkout(context.Background(), "s1", "", checkoutForm)
	assert.ErrorIs(t, err, services.ErrCartEmpty)
	assert.Equal(t, services.KeyCartEmpty, services.ErrorKey(err))
	mockOrders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_Checkout_StockChangedSinceAdd(t *testing.T) {
	ctx := context.Background()
	mockProducts := new(MockProductRepository)
	mockOrders := new(MockOrderRepository)
	carts := repositories.NewMemoryCartStore()
	service := services.NewOrderService(mockOrders, mockProducts, carts, nil, zap.NewNop())

	laptop := &models.Product{ID: "1", Name: "Laptop", Price: decimal.NewFromInt(1000), Stock: 5}
	seedCart(t, carts, "s1", map[*models.Product]int{laptop: 3})

	mockProducts.On("GetByID", "1").Return(&models.Product{ID: "1", Name: "Laptop", Price: decimal.NewFromInt(1000), Stock: 2}, nil).Once()

	_, err := service.Checkout(ctx, "s1", "", checkoutForm)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	mockProducts.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)

	cart, err := carts.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())
}

func TestOrderService_Checkout_RestoresStockOnFailure(t *testing.T) {
	ctx := context.Background()
	mockProducts := new(MockProductRepository)
	mockOrders := new(MockOrderRepository)
	carts := repositories.NewMemoryCartStore()
	service := services.NewOrderService(mockOrders, mockProducts, carts, nil, zap.NewNop())

	laptop := &models.Product{ID: "1", Name: "Laptop", Price: decimal.NewFromInt(1000), Stock: 5}
	seedCart(t, carts, "s1", map[*models.Product]int{laptop: 2})

	mockProducts.On("GetByID", "1").Return(laptop, nil).Once()
	mockProducts.On("DecrementStock", "1", 2).Return(nil).Once()
	mockOrders.On("Create", mock.Anything).Return(fmt.Errorf("database error")).Once()
	mockProducts.On("DecrementStock", "1", -2).Return(nil).Once()

	_, err := service.Checkout(ctx, "s1", "", checkoutForm)
	assert.ErrorContains(t, err, "database error")
	mockProducts.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	service := services.NewOrderService(mockOrders, new(MockProductRepository), repositories.NewMemoryCartStore(), nil, zap.NewNop())

	mockOrders.On("UpdateStatus", "order-1", models.OrderStatusShipped).Return(nil).Once()
	assert.NoError(t, service.UpdateOrderStatus("order-1", models.OrderStatusShipped))

	err := service.UpdateOrderStatus("order-1", "lost")
	assert.ErrorIs(t, err, services.ErrInvalidOrderStatus)

	mockOrders.On("UpdateStatus", "missing", models.OrderStatusCancelled).
		Return(fmt.Errorf("order with ID missing not found for status update: %w", repositories.ErrOrderNotFound)).Once()
	err = service.UpdateOrderStatus("missing", models.OrderStatusCancelled)
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_GetOrders(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	service := services.NewOrderService(mockOrders, new(MockProductRepository), repositories.NewMemoryCartStore(), nil, zap.NewNop())

	expected := []models.Order{{ID: "order-1"}, {ID: "order-2"}}
	mockOrders.On("GetAll").Return(expected, nil).Once()
	mockOrders.On("GetByID", "order-1").Return(&expected[0], nil).Once()

	orders, err := service.GetAllOrders()
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)

	order, err := service.GetOrderByID("order-1")
	assert.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	mockOrders.AssertExpectations(t)
}
