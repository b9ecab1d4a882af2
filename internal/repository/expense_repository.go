package repository

import (
	"context"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context, page, perPage int) ([]models.Expense, int64, error)
}

type GormExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

func (r *GormExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return errors.Wrap(err, "create expense")
	}
	return nil
}

// List returns one page of expenses, latest expense date first.
func (r *GormExpenseRepository) List(ctx context.Context, page, perPage int) ([]models.Expense, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Expense{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count expenses")
	}

	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("expense_date DESC, id DESC").
		Offset(offset(page, perPage)).
		Limit(perPage).
		Find(&expenses).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list expenses")
	}
	return expenses, total, nil
}
