package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.uber.org/zap"
)

// CartService manages the cart of each customer session.
type CartService struct {
	carts    repositories.CartStore
	products repositories.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartStore, products repositories.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// GetCart returns the session cart, empty if the session has none yet.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	return s.carts.Load(ctx, sessionID)
}

// AddToCart adds quantity units of a product to the session cart. The
// resulting line may not exceed the product's current stock.
func (s *CartService) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	inCart := 0
	if line := cart.FindLine(productID); line != nil {
		inCart = line.Quantity
	}
	if inCart+quantity > product.Stock {
		return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
			product.Name, inCart+quantity, product.Stock, repositories.ErrInsufficientStock)
	}

	cart.AddItem(*product, quantity)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	// A product deleted while the line was being saved is not in the cart
	// sweep of DeleteProduct; drop the line here instead.
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			if _, rmErr := s.RemoveFromCart(ctx, sessionID, productID); rmErr != nil {
				s.logger.Error("Failed to drop line of deleted product",
					zap.String("session_id", sessionID),
					zap.String("product_id", productID),
					zap.Error(rmErr))
			}
		}
		return nil, err
	}
	s.logger.Debug("Product added to cart",
		zap.String("session_id", sessionID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return cart, nil
}

// RemoveFromCart drops every line of the product from the session cart.
func (s *CartService) RemoveFromCart(ctx context.Context, sessionID, productID string) (*models.Cart, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveProduct(productID) {
		return cart, nil
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the session cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.carts.Delete(ctx, sessionID)
}
