package handlers

import (
	"errors"
	"fmt"

	"storefront/internal/i18n"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service    *services.OrderService
	validate   *validator.Validate
	translator *i18n.Translator
	logger     *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, validate *validator.Validate, translator *i18n.Translator, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service:    service,
		validate:   validate,
		translator: translator,
		logger:     logger,
	}
}

// RegisterRoutes registers the customer checkout route behind mw, which must
// include the cart session middleware.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	orderRoutes := router.Group("/orders", mw...)
	orderRoutes.Post("/checkout", h.HandleCheckout)
}

// RegisterAdminRoutes registers the order management routes.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		h.logger.Error("Error getting all orders", zap.Error(err))
		return respondInternal(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		h.logger.Error("Error getting order", zap.String("order_id", orderID), zap.Error(err))
		return respondInternal(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleCheckout turns the session cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var vm models.OrderViewModel
	if err := c.BodyParser(&vm); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(vm); err != nil {
		return respondFieldErrors(c, h.translator, err)
	}

	order, err := h.service.Checkout(c.UserContext(), middleware.SessionID(c), middleware.UserID(c), vm)
	if err != nil {
		switch key := services.ErrorKey(err); key {
		case services.KeyCartEmpty:
			return respondKeys(c, h.translator, fiber.StatusBadRequest, "Checkout failed", key)
		case services.KeyInsufficientStock, services.KeyProductNotFound:
			return respondKeys(c, h.translator, fiber.StatusConflict, "Checkout failed", key)
		}
		h.logger.Error("Error during checkout", zap.Error(err))
		return respondInternal(c, "Could not create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateStatusRequest is the body of an order status update.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondFieldErrors(c, h.translator, err)
	}

	if err := h.service.UpdateOrderStatus(orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, repositories.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		case errors.Is(err, services.ErrInvalidOrderStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order update failed",
				"error":   err.Error(),
			})
		}
		h.logger.Error("Error updating order status", zap.String("order_id", orderID), zap.Error(err))
		return respondInternal(c, "Could not update order status", err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, req.Status),
	})
}
