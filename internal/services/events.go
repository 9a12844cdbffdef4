package services

import (
	"encoding/json"
	"storefront/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Routing keys of the events published on the store exchange.
const (
	EventOrderCreated   = "order.created"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes a message body under a routing key.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderCreatedEvent is published after a successful checkout.
type OrderCreatedEvent struct {
	OrderID string          `json:"order_id"`
	UserID  string          `json:"user_id,omitempty"`
	Status  string          `json:"status"`
	Total   decimal.Decimal `json:"total"`
	Lines   int             `json:"lines"`
}

// ProductDeletedEvent is published after a product and its references are removed.
type ProductDeletedEvent struct {
	ProductID         string `json:"product_id"`
	OrderLinesRemoved int64  `json:"order_lines_removed"`
	CartsUpdated      int    `json:"carts_updated"`
}

// publishEvent never fails the caller: a broker outage only costs the event.
func publishEvent(publisher EventPublisher, logger *zap.Logger, routingKey string, event interface{}) {
	if publisher == nil {
		logger.Debug("No event publisher configured, skipping event", zap.String("routing_key", routingKey))
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	if err := publisher.Publish(rabbitmq.ExchangeStore, routingKey, body); err != nil {
		logger.Warn("Failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
