package services

import (
	"errors"
	"strings"

	"storefront/internal/repositories"
)

// Keys identifying validation and business failures. They are stable and
// map 1:1 to localised display messages.
const (
	KeyMissingName             = "MissingName"
	KeyMissingPrice            = "MissingPrice"
	KeyPriceNotANumber         = "PriceNotANumber"
	KeyPriceNotGreaterThanZero = "PriceNotGreaterThanZero"
	KeyPriceOutOfRange         = "PriceOutOfRange"
	KeyMissingQuantity         = "MissingQuantity"
	KeyStockNotAnInteger       = "StockNotAnInteger"
	KeyStockNotGreaterThanZero = "StockNotGreaterThanZero"

	KeyCartEmpty                  = "CartEmpty"
	KeyInsufficientStock          = "InsufficientStock"
	KeyProductNotFound            = "ProductNotFound"
	KeyQuantityNotGreaterThanZero = "QuantityNotGreaterThanZero"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
)

// ValidationError reports every key that failed validation for one input.
type ValidationError struct {
	Keys []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Keys, ", ")
}

// ErrorKey returns the display key of a business error, or "" when err has none.
func ErrorKey(err error) string {
	switch {
	case errors.Is(err, ErrCartEmpty):
		return KeyCartEmpty
	case errors.Is(err, ErrInvalidQuantity):
		return KeyQuantityNotGreaterThanZero
	case errors.Is(err, repositories.ErrInsufficientStock):
		return KeyInsufficientStock
	case errors.Is(err, repositories.ErrProductNotFound):
		return KeyProductNotFound
	}
	return ""
}
