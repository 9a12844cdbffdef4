package services

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	carts       repositories.CartStore
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	carts repositories.CartStore,
	publisher EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		carts:       carts,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// Checkout turns the session cart into an order. Every line is checked
// against current stock, stock is decremented, and the cart is cleared.
func (s *OrderService) Checkout(ctx context.Context, sessionID, userID string, vm models.OrderViewModel) (*models.Order, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	total := decimal.Zero
	lines := make([]models.OrderLine, 0, len(cart.Lines))
	for _, item := range cart.Lines {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
				product.Name, item.Quantity, product.Stock, repositories.ErrInsufficientStock)
		}
		lines = append(lines, models.OrderLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			Price:       product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	decremented := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		if err := s.productRepo.DecrementStock(line.ProductID, line.Quantity); err != nil {
			s.restoreStock(decremented)
			return nil, err
		}
		decremented = append(decremented, line)
	}

	order := &models.Order{
		UserID:      userID,
		Name:        vm.Name,
		Address:     vm.Address,
		City:        vm.City,
		Zip:         vm.Zip,
		Country:     vm.Country,
		Lines:       lines,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		Date:        time.Now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		s.restoreStock(decremented)
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("Failed to clear cart after checkout", zap.String("session_id", sessionID), zap.Error(err))
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Lines)),
		zap.String("total", order.TotalAmount.String()))

	publishEvent(s.publisher, s.logger, EventOrderCreated, OrderCreatedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Total:   order.TotalAmount,
		Lines:   len(order.Lines),
	})
	return order, nil
}

// restoreStock gives back the units of lines already decremented; a negative
// decrement adds to the stock.
func (s *OrderService) restoreStock(lines []models.OrderLine) {
	for _, line := range lines {
		if err := s.productRepo.DecrementStock(line.ProductID, -line.Quantity); err != nil {
			s.logger.Error("Failed to restore stock",
				zap.String("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err))
		}
	}
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !validOrderStatuses[status] {
		return fmt.Errorf("%w: %s", ErrInvalidOrderStatus, status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	s.logger.Info("Order status updated", zap.String("order_id", id), zap.String("status", status))
	return nil
}
