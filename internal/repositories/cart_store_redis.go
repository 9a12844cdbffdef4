package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"storefront/internal/models"
	"time"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// RedisCartStore keeps each session cart as a JSON document under cart:<session>.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore creates a RedisCartStore; a zero ttl keeps carts forever.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// Load reads the session cart.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("failed to load cart %s: %w", sessionID, err)
	}
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", sessionID, err)
	}
	cart.SessionID = sessionID
	return &cart, nil
}

// Save writes the cart and refreshes its expiry.
func (s *RedisCartStore) Save(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", cart.SessionID, err)
	}
	if err := s.client.Set(ctx, cartKey(cart.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cart.SessionID, err)
	}
	return nil
}

// Delete removes the session cart.
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", sessionID, err)
	}
	return nil
}

// RemoveProduct scans every cart key and rewrites the carts holding the product.
func (s *RedisCartStore) RemoveProduct(ctx context.Context, productID string) (int, error) {
	changed := 0
	iter := s.client.Scan(ctx, 0, cartKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		sessionID := iter.Val()[len(cartKeyPrefix):]
		cart, err := s.Load(ctx, sessionID)
		if err != nil {
			return changed, err
		}
		if !cart.RemoveProduct(productID) {
			continue
		}
		if err := s.Save(ctx, cart); err != nil {
			return changed, err
		}
		changed++
	}
	if err := iter.Err(); err != nil {
		return changed, fmt.Errorf("failed to scan carts: %w", err)
	}
	return changed, nil
}
