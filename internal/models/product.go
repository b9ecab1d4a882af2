package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. StockQuantity is decremented by sales.
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Description   *string         `gorm:"type:text" json:"description"`
	Category      string          `gorm:"size:100;not null;index" json:"category"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Unit          string          `gorm:"size:50;not null" json:"unit"`
	IsActive      bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductRequest is the create payload for a product.
type ProductRequest struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Category      string           `json:"category" validate:"required,max=100"`
	Price         *decimal.Decimal `json:"price" validate:"required,gte=0"`
	StockQuantity *int             `json:"stock_quantity" validate:"required,gte=0"`
	Unit          string           `json:"unit" validate:"required,max=50"`
	IsActive      *bool            `json:"is_active"`
}

// ProductUpdate is a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Category      *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	Unit          *string          `json:"unit" validate:"omitempty,min=1,max=50"`
	IsActive      *bool            `json:"is_active"`
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Search   string
	Category string
	Active   *bool
	Page     int
	PerPage  int
}

// TopProduct is a product with the units sold inside a reporting window.
type TopProduct struct {
	Product
	TotalSold int64 `json:"total_sold"`
}
