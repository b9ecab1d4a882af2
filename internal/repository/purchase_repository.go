package repository

import (
	"context"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	List(ctx context.Context, page, perPage int) ([]models.Purchase, int64, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
}

type GormPurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Create inserts a purchase and its items in one transaction. A non-nil
// SupplierID must reference an existing supplier.
func (r *GormPurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if purchase.SupplierID != nil {
			var n int64
			if err := tx.Model(&models.Supplier{}).Where("id = ?", *purchase.SupplierID).Count(&n).Error; err != nil {
				return errors.Wrapf(err, "look up supplier %d", *purchase.SupplierID)
			}
			if n == 0 {
				return ErrSupplierNotFound
			}
		}

		if err := tx.Create(purchase).Error; err != nil {
			return errors.Wrap(err, "create purchase")
		}
		return nil
	})
}

// List returns one page of purchases, newest first.
func (r *GormPurchaseRepository) List(ctx context.Context, page, perPage int) ([]models.Purchase, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Purchase{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count purchases")
	}

	var purchases []models.Purchase
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("User").
		Preload("Items").
		Order("created_at DESC, id DESC").
		Offset(offset(page, perPage)).
		Limit(perPage).
		Find(&purchases).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list purchases")
	}
	return purchases, total, nil
}

func (r *GormPurchaseRepository) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, errors.Wrap(err, "list suppliers")
	}
	return suppliers, nil
}
