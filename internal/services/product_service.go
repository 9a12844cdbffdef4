package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxPrice is the largest value the decimal(10,2) price column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	orderRepo repositories.OrderRepository
	carts     repositories.CartStore
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(
	repo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	carts repositories.CartStore,
	publisher EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		repo:      repo,
		orderRepo: orderRepo,
		carts:     carts,
		publisher: publisher,
		logger:    logger,
	}
}

// CheckProductModelErrors returns the keys of every check the view-model fails.
// Name, price and stock are checked independently; format and range checks
// only run on a field that is present.
func (s *ProductService) CheckProductModelErrors(vm *models.ProductViewModel) []string {
	keys := make([]string, 0)

	if strings.TrimSpace(vm.Name) == "" {
		keys = append(keys, KeyMissingName)
	}

	if price := strings.TrimSpace(vm.Price); price == "" {
		keys = append(keys, KeyMissingPrice)
	} else if p, err := decimal.NewFromString(price); err != nil {
		keys = append(keys, KeyPriceNotANumber)
	} else if !p.IsPositive() {
		keys = append(keys, KeyPriceNotGreaterThanZero)
	} else if !p.Equal(p.Round(2)) || p.GreaterThan(maxPrice) {
		keys = append(keys, KeyPriceOutOfRange)
	}

	if stock := strings.TrimSpace(vm.Stock); stock == "" {
		keys = append(keys, KeyMissingQuantity)
	} else if q, err := strconv.Atoi(stock); err != nil {
		keys = append(keys, KeyStockNotAnInteger)
	} else if q <= 0 {
		keys = append(keys, KeyStockNotGreaterThanZero)
	}

	return keys
}

// SaveProduct validates the view-model and creates the product, or updates it
// when the view-model carries an ID. Nothing is persisted when validation
// fails; the error is then a *ValidationError.
func (s *ProductService) SaveProduct(vm *models.ProductViewModel) (*models.Product, error) {
	if keys := s.CheckProductModelErrors(vm); len(keys) > 0 {
		return nil, &ValidationError{Keys: keys}
	}

	product := toProduct(vm)
	if product.ID == "" {
		if err := s.repo.Create(product); err != nil {
			return nil, err
		}
		s.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
		return product, nil
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.logger.Info("Product updated", zap.String("product_id", product.ID))
	return s.repo.GetByID(product.ID)
}

// DeleteProduct deletes a product together with every cart line and order
// line that references it.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	cartsUpdated, err := s.carts.RemoveProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to remove product %s from carts: %w", id, err)
	}
	linesRemoved, err := s.orderRepo.DeleteLinesByProduct(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", id),
		zap.Int("carts_updated", cartsUpdated),
		zap.Int64("order_lines_removed", linesRemoved))

	publishEvent(s.publisher, s.logger, EventProductDeleted, ProductDeletedEvent{
		ProductID:         id,
		OrderLinesRemoved: linesRemoved,
		CartsUpdated:      cartsUpdated,
	})
	return nil
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetAllProductsViewModel lists every product with its fields rendered as strings.
func (s *ProductService) GetAllProductsViewModel() ([]models.ProductViewModel, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	vms := make([]models.ProductViewModel, 0, len(products))
	for _, p := range products {
		vms = append(vms, ToProductViewModel(p))
	}
	return vms, nil
}

// GetProductViewModelByID returns one product rendered as a view-model.
func (s *ProductService) GetProductViewModelByID(id string) (*models.ProductViewModel, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	vm := ToProductViewModel(*product)
	return &vm, nil
}

// ToProductViewModel renders a product's fields as strings.
func ToProductViewModel(p models.Product) models.ProductViewModel {
	return models.ProductViewModel{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.String(),
		Stock:       strconv.Itoa(p.Stock),
		Description: p.Description,
		Details:     p.Details,
	}
}

// toProduct maps a view-model that already passed CheckProductModelErrors.
func toProduct(vm *models.ProductViewModel) *models.Product {
	price := decimal.RequireFromString(strings.TrimSpace(vm.Price))
	stock, _ := strconv.Atoi(strings.TrimSpace(vm.Stock))
	return &models.Product{
		ID:          strings.TrimSpace(vm.ID),
		Name:        strings.TrimSpace(vm.Name),
		Price:       price,
		Stock:       stock,
		Description: vm.Description,
		Details:     vm.Details,
	}
}
