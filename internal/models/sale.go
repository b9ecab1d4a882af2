package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a customer settled a sale.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCreditCard PaymentMethod = "credit_card"
)

// Sale is one completed customer transaction.
// Total always equals Subtotal + Tax.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Reference     string          `gorm:"size:36;not null;uniqueIndex" json:"reference"`
	CustomerName  *string         `gorm:"size:255" json:"customer_name"`
	PaymentMethod PaymentMethod   `gorm:"size:20;not null;index" json:"payment_method"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          *User           `json:"user,omitempty"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	Items         []SaleItem      `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SaleItem is one product line of a sale. UnitPrice is a snapshot taken at
// sale time and does not follow later catalog price changes.
type SaleItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	SaleID     uint            `gorm:"not null;index" json:"sale_id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Product    *Product        `json:"product,omitempty"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// SaleRequest is the payload of POST /sales.
type SaleRequest struct {
	CustomerName  *string           `json:"customer_name" validate:"omitempty,max=255"`
	PaymentMethod PaymentMethod     `json:"payment_method" validate:"required,oneof=cash debit_card credit_card"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes         *string           `json:"notes" validate:"omitempty,max=1000"`
}

// SaleItemRequest is one requested line. UnitPrice may differ from the
// catalog price to allow discounts.
type SaleItemRequest struct {
	ProductID uint             `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price" validate:"required,gte=0"`
}
