package repository

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// SaleRepository persists sales together with their stock effects.
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uint) (*models.Sale, error)
	List(ctx context.Context, page, perPage int) ([]models.Sale, int64, error)
	Recent(ctx context.Context, limit int) ([]models.Sale, error)
	Between(ctx context.Context, from, to time.Time) ([]models.Sale, error)
}

// GormSaleRepository implements SaleRepository on a SQL store
type GormSaleRepository struct {
	db                 *gorm.DB
	allowNegativeStock bool
}

// NewSaleRepository creates a sale repository. With allowNegativeStock set,
// sales may drive a product's stock below zero.
func NewSaleRepository(db *gorm.DB, allowNegativeStock bool) *GormSaleRepository {
	return &GormSaleRepository{db: db, allowNegativeStock: allowNegativeStock}
}

// Create inserts sale and its Items and decrements stock for every item,
// all in one transaction. Nothing is written when any step fails.
func (r *GormSaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	items := sale.Items
	sale.Items = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return errors.Wrap(err, "create sale")
		}

		for i := range items {
			item := &items[i]
			if err := r.decrementStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}

			item.SaleID = sale.ID
			if err := tx.Create(item).Error; err != nil {
				return errors.Wrapf(err, "create item for product %d", item.ProductID)
			}
		}
		return nil
	})

	sale.Items = items
	if err != nil {
		sale.ID = 0
		return err
	}
	return nil
}

// decrementStock subtracts qty in a single conditional UPDATE so concurrent
// sales of the same product serialize on the row.
func (r *GormSaleRepository) decrementStock(tx *gorm.DB, productID uint, qty int) error {
	q := tx.Model(&models.Product{}).Where("id = ?", productID)
	if !r.allowNegativeStock {
		q = q.Where("stock_quantity >= ?", qty)
	}

	res := q.Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))
	if res.Error != nil {
		return errors.Wrapf(res.Error, "decrement stock of product %d", productID)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
		return errors.Wrapf(err, "look up product %d", productID)
	}
	if exists == 0 {
		return errors.Wrapf(ErrProductNotFound, "product %d", productID)
	}
	return errors.Wrapf(ErrInsufficientStock, "product %d", productID)
}

// GetByID returns a sale with its cashier and items (with products).
func (r *GormSaleRepository) GetByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	err := r.withDetails(ctx).First(&sale, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get sale %d", id)
	}
	return &sale, nil
}

// List returns one page of sales, newest first.
func (r *GormSaleRepository) List(ctx context.Context, page, perPage int) ([]models.Sale, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Sale{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count sales")
	}

	var sales []models.Sale
	err := r.withDetails(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset(page, perPage)).
		Limit(perPage).
		Find(&sales).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list sales")
	}
	return sales, total, nil
}

// Recent returns the latest limit sales.
func (r *GormSaleRepository) Recent(ctx context.Context, limit int) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.withDetails(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&sales).Error
	if err != nil {
		return nil, errors.Wrap(err, "list recent sales")
	}
	return sales, nil
}

// Between returns sales created in [from, to), oldest first.
func (r *GormSaleRepository) Between(ctx context.Context, from, to time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC, id ASC").
		Find(&sales).Error
	if err != nil {
		return nil, errors.Wrap(err, "list sales in range")
	}
	return sales, nil
}

func (r *GormSaleRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Items.Product")
}
