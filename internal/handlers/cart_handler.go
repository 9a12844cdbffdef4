package handlers

import (
	"storefront/internal/i18n"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service    *services.CartService
	validate   *validator.Validate
	translator *i18n.Translator
	logger     *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, validate *validator.Validate, translator *i18n.Translator, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		service:    service,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

// RegisterRoutes registers the cart routes behind mw, which must include the
// cart session middleware.
func (h *CartHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	cartRoutes := router.Group("/cart", mw...)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/lines", h.HandleAddLine)
	cartRoutes.Delete("/lines/:productId", h.HandleRemoveLine)
}

// AddLineRequest is the body of an add-to-cart request.
type AddLineRequest struct {
	ProductID string `json:"product_id" form:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" form:"quantity"`
}

// CartResponse is a cart with its computed totals.
type CartResponse struct {
	Lines         []models.CartLine `json:"lines"`
	TotalQuantity int               `json:"total_quantity"`
	TotalValue    string            `json:"total_value"`
	AverageValue  string            `json:"average_value"`
}

func newCartResponse(cart *models.Cart) CartResponse {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return CartResponse{
		Lines:         lines,
		TotalQuantity: cart.TotalQuantity(),
		TotalValue:    cart.TotalValue().StringFixed(2),
		AverageValue:  cart.AverageValue().StringFixed(2),
	}
}

// HandleGetCart returns the session cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		h.logger.Error("Error loading cart", zap.Error(err))
		return respondInternal(c, "Could not retrieve cart", err)
	}
	return c.JSON(newCartResponse(cart))
}

// HandleAddLine adds a quantity of a product to the session cart.
func (h *CartHandler) HandleAddLine(c *fiber.Ctx) error {
	var req AddLineRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondFieldErrors(c, h.translator, err)
	}

	cart, err := h.service.AddToCart(c.UserContext(), middleware.SessionID(c), req.ProductID, req.Quantity)
	if err != nil {
		switch key := services.ErrorKey(err); key {
		case services.KeyQuantityNotGreaterThanZero:
			return respondKeys(c, h.translator, fiber.StatusBadRequest, "Validation failed", key)
		case services.KeyProductNotFound:
			return respondKeys(c, h.translator, fiber.StatusNotFound, "Product not found", key)
		case services.KeyInsufficientStock:
			return respondKeys(c, h.translator, fiber.StatusConflict, "Could not add to cart", key)
		}
		h.logger.Error("Error adding to cart", zap.String("product_id", req.ProductID), zap.Error(err))
		return respondInternal(c, "Could not add to cart", err)
	}
	return c.JSON(newCartResponse(cart))
}

// HandleRemoveLine removes every line of a product from the session cart.
func (h *CartHandler) HandleRemoveLine(c *fiber.Ctx) error {
	productID := c.Params("productId")
	cart, err := h.service.RemoveFromCart(c.UserContext(), middleware.SessionID(c), productID)
	if err != nil {
		h.logger.Error("Error removing from cart", zap.String("product_id", productID), zap.Error(err))
		return respondInternal(c, "Could not remove from cart", err)
	}
	return c.JSON(newCartResponse(cart))
}

// HandleClearCart empties the session cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(c.UserContext(), middleware.SessionID(c)); err != nil {
		h.logger.Error("Error clearing cart", zap.Error(err))
		return respondInternal(c, "Could not clear cart", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
