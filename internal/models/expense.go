package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an operating cost such as rent or utilities.
type Expense struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Description   string          `gorm:"size:255;not null" json:"description"`
	Category      string          `gorm:"size:100;not null;index" json:"category"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ExpenseDate   time.Time       `gorm:"type:date;not null;index" json:"expense_date"`
	PaymentMethod string          `gorm:"size:50;not null" json:"payment_method"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          *User           `json:"user,omitempty"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	ReceiptNumber *string         `gorm:"size:100" json:"receipt_number"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseRequest is the payload of POST /expenses.
type ExpenseRequest struct {
	Description   string           `json:"description" validate:"required,max=255"`
	Category      string           `json:"category" validate:"required,max=100"`
	Amount        *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	ExpenseDate   *Date            `json:"expense_date" validate:"required"`
	PaymentMethod string           `json:"payment_method" validate:"required,max=50"`
	Notes         *string          `json:"notes" validate:"omitempty,max=1000"`
	ReceiptNumber *string          `json:"receipt_number" validate:"omitempty,max=100"`
}
