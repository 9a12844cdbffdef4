package handlers

import (
	"errors"
	"fmt"

	"storefront/internal/i18n"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the product catalogue.
type ProductHandler struct {
	service    *services.ProductService
	translator *i18n.Translator
	logger     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, translator *i18n.Translator, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service:    service,
		translator: translator,
		logger:     logger,
	}
}

// RegisterRoutes registers the read-only catalogue routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterAdminRoutes registers the product management routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists every product as a view-model.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProductsViewModel()
	if err != nil {
		h.logger.Error("Error getting all products", zap.Error(err))
		return respondInternal(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductViewModelByID(productID)
	if err != nil {
		return h.productError(c, productID, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct validates and stores a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var vm models.ProductViewModel
	if err := c.BodyParser(&vm); err != nil {
		return respondBadBody(c, err)
	}
	vm.ID = ""

	product, err := h.service.SaveProduct(&vm)
	if err != nil {
		return h.productError(c, "", "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(services.ToProductViewModel(*product))
}

// HandleUpdateProduct validates and overwrites an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var vm models.ProductViewModel
	if err := c.BodyParser(&vm); err != nil {
		return respondBadBody(c, err)
	}
	vm.ID = productID

	product, err := h.service.SaveProduct(&vm)
	if err != nil {
		return h.productError(c, productID, "Could not update product", err)
	}
	return c.JSON(services.ToProductViewModel(*product))
}

// HandleDeleteProduct deletes a product and every line referencing it.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), productID); err != nil {
		return h.productError(c, productID, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

func (h *ProductHandler) productError(c *fiber.Ctx, productID, message string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return respondKeys(c, h.translator, fiber.StatusBadRequest, "Validation failed", verr.Keys...)
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", productID),
		})
	}
	h.logger.Error(message, zap.String("product_id", productID), zap.Error(err))
	return respondInternal(c, message, err)
}
