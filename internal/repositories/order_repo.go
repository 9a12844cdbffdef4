package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
	// DeleteLinesByProduct removes every order line referencing the product
	// and returns how many were removed.
	DeleteLinesByProduct(productID string) (int64, error)
}
