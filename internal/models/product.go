package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the store catalogue.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"not null;type:varchar(100)"`
	Price       decimal.Decimal `json:"price" gorm:"not null;type:decimal(10,2)"`
	Stock       int             `json:"stock" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Details     string          `json:"details" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductViewModel carries product form input as received from the client.
// Every field is a string; it is parsed and validated before being mapped to a Product.
type ProductViewModel struct {
	ID          string `json:"id" form:"id"`
	Name        string `json:"name" form:"name"`
	Price       string `json:"price" form:"price"`
	Stock       string `json:"stock" form:"stock"`
	Description string `json:"description" form:"description"`
	Details     string `json:"details" form:"details"`
}
