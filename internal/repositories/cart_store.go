package repositories

import (
	"context"

	"storefront/internal/models"
)

// CartStore keeps one cart per session. Load never fails for an unknown
// session: it returns an empty cart instead.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
	// RemoveProduct drops the product's lines from every stored cart and
	// returns how many carts were changed.
	RemoveProduct(ctx context.Context, productID string) (int, error)
}
