package repositories

import (
	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStock removes quantity units from the product's stock.
	// It fails with ErrInsufficientStock rather than letting stock go negative.
	DecrementStock(id string, quantity int) error
}
