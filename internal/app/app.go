package app

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/i18n"
	applogger "storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App is the wired HTTP application together with the resources it owns.
type App struct {
	Fiber   *fiber.App
	closers []func() error
}

type repositorySet struct {
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	users    repositories.UserRepository
}

// New builds the repositories, services and routes described by cfg.
// publisher may be nil, in which case no events are published.
func New(cfg *config.Config, log *zap.Logger, publisher services.EventPublisher) (*App, error) {
	a := &App{}

	repos, err := a.openRepositories(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	carts, err := a.openCartStore(cfg, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	validate := validator.New()
	translator, err := i18n.New(cfg.DefaultLocale, validate)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to set up translations: %w", err)
	}

	productService := services.NewProductService(repos.products, repos.orders, carts, publisher, log)
	cartService := services.NewCartService(carts, repos.products, log)
	orderService := services.NewOrderService(repos.orders, repos.products, carts, publisher, log)
	authService := services.NewAuthService(repos.users, cfg.JWTSecret, log)

	_, err = services.EnsureAdminUser(repos.users, services.AdminSeed{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	productHandler := handlers.NewProductHandler(productService, translator, log)
	cartHandler := handlers.NewCartHandler(cartService, validate, translator, log)
	orderHandler := handlers.NewOrderHandler(orderService, validate, translator, log)
	authHandler := handlers.NewAuthHandler(authService, validate, translator, log)

	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	sessions := session.New(session.Config{
		Expiration:     cfg.SessionExpiration,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	shopper := []fiber.Handler{
		middleware.CartSession(sessions, log),
		middleware.OptionalAuth(authService),
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": cfg.DatabaseDriver,
			"events":   publisher != nil,
		})
	})

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1, shopper...)
	orderHandler.RegisterRoutes(apiV1, shopper...)

	admin := apiV1.Group("/admin", middleware.AuthRequired(authService, log), middleware.AdminOnly())
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	a.Fiber = app
	return a, nil
}

func (a *App) openRepositories(cfg *config.Config, log *zap.Logger) (*repositorySet, error) {
	if cfg.DatabaseDriver == "memory" {
		log.Info("Using in-memory repositories")
		return &repositorySet{
			products: repositories.NewMemoryProductRepository(),
			orders:   repositories.NewMemoryOrderRepository(),
			users:    repositories.NewMemoryUserRepository(),
		}, nil
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, applogger.GormLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	a.closers = append(a.closers, sqlDB.Close)

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database ready", zap.String("driver", cfg.DatabaseDriver))

	return &repositorySet{
		products: repositories.NewGORMProductRepository(db),
		orders:   repositories.NewGORMOrderRepository(db),
		users:    repositories.NewGORMUserRepository(db),
	}, nil
}

func (a *App) openCartStore(cfg *config.Config, log *zap.Logger) (repositories.CartStore, error) {
	if cfg.RedisAddr == "" {
		return repositories.NewMemoryCartStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	a.closers = append(a.closers, client.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Info("Carts stored in redis", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CartTTL))
	return repositories.NewRedisCartStore(client, cfg.CartTTL), nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing resources: %v", errs)
	}
	return nil
}
