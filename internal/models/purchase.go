package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier sells raw supplies to the shop.
type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	ContactPerson string    `gorm:"size:255" json:"contact_person"`
	Phone         string    `gorm:"size:50" json:"phone"`
	Email         string    `gorm:"size:255" json:"email"`
	Address       string    `gorm:"type:text" json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Purchase records supplies bought from a supplier.
// Total equals the sum of its items' TotalPrice.
type Purchase struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SupplierID   *uint           `gorm:"index" json:"supplier_id"`
	Supplier     *Supplier       `json:"supplier,omitempty"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	User         *User           `json:"user,omitempty"`
	PurchaseDate time.Time       `gorm:"type:date;not null" json:"purchase_date"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Notes        *string         `gorm:"type:text" json:"notes"`
	Items        []PurchaseItem  `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PurchaseItem is one supply line of a purchase.
type PurchaseItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	PurchaseID uint            `gorm:"not null;index" json:"purchase_id"`
	ItemName   string          `gorm:"size:255;not null" json:"item_name"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	Unit       string          `gorm:"size:50;not null" json:"unit"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PurchaseRequest is the payload of POST /purchases.
type PurchaseRequest struct {
	SupplierID   *uint                 `json:"supplier_id"`
	PurchaseDate *Date                 `json:"purchase_date"`
	Items        []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes        *string               `json:"notes" validate:"omitempty,max=1000"`
}

type PurchaseItemRequest struct {
	ItemName  string           `json:"item_name" validate:"required,max=255"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	Unit      string           `json:"unit" validate:"required,max=50"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"required,gte=0"`
}
