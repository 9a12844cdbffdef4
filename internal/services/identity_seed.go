package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeed holds the credentials of the default admin account.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// EnsureAdminUser creates the admin account when it does not exist yet and
// reports whether it did.
func EnsureAdminUser(users repositories.UserRepository, seed AdminSeed, logger *zap.Logger) (bool, error) {
	existing, err := users.GetByUsername(seed.Username)
	if err == nil && existing != nil {
		return false, nil
	}
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return false, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := &models.User{
		Username: seed.Username,
		Email:    seed.Email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := users.Create(admin); err != nil {
		return false, fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Admin user seeded", zap.String("username", admin.Username))
	return true, nil
}
