package main

import (
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var publisher services.EventPublisher
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Fatal("Failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient

		for _, queue := range []string{rabbitmq.QueueOrderEvents, rabbitmq.QueueProductEvents} {
			if err := mqClient.Consume(queue, logEvent(log, queue)); err != nil {
				log.Error("Failed to start RabbitMQ consumer", zap.String("queue", queue), zap.Error(err))
			}
		}
	}

	application, err := app.New(cfg, log, publisher)
	if err != nil {
		log.Fatal("Failed to build application", zap.Error(err))
	}
	defer application.Close()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting server", zap.String("port", cfg.AppPort))
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := application.Fiber.Shutdown(); err != nil {
		log.Error("Error during Fiber shutdown", zap.Error(err))
	}
	log.Info("Server gracefully stopped")
}

// logEvent returns a consumer that records every store event it receives.
func logEvent(log *zap.Logger, queue string) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		log.Info("Received store event",
			zap.String("queue", queue),
			zap.String("routing_key", msg.RoutingKey),
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.ByteString("body", msg.Body))
		return nil
	}
}
