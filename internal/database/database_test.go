package database_test

import (
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := database.Open("sqlite", "file:database_test?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	for _, table := range []interface{}{&models.Product{}, &models.Order{}, &models.OrderLine{}, &models.User{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "", logger.Silent)
	assert.ErrorContains(t, err, "unsupported database driver")
}
