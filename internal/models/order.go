package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderLine represents a single product line within an order.
type OrderLine struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string          `json:"order_id" gorm:"index;not null;type:varchar(36)"`
	ProductID   string          `json:"product_id" gorm:"index;not null;type:varchar(36)"`
	ProductName string          `json:"product_name" gorm:"type:varchar(100)"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"not null;type:decimal(10,2)"` // Unit price at checkout time
}

// Order represents a completed customer purchase.
type Order struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `json:"user_id,omitempty" gorm:"index;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(100)"`
	Address     string          `json:"address" gorm:"type:varchar(255)"`
	City        string          `json:"city" gorm:"type:varchar(100)"`
	Zip         string          `json:"zip" gorm:"type:varchar(20)"`
	Country     string          `json:"country" gorm:"type:varchar(100)"`
	Lines       []OrderLine     `json:"lines" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"not null;type:decimal(12,2)"`
	Status      string          `json:"status" gorm:"type:varchar(20)"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderViewModel is the checkout form submitted by a customer.
type OrderViewModel struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Address string `json:"address" form:"address" validate:"required,max=255"`
	City    string `json:"city" form:"city" validate:"required,max=100"`
	Zip     string `json:"zip" form:"zip" validate:"omitempty,max=20"`
	Country string `json:"country" form:"country" validate:"required,max=100"`
}
