package repository

import (
	"context"
	"strings"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error)
	ListActive(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	LowStock(ctx context.Context, threshold, limit int) ([]models.Product, error)
}

// GormProductRepository implements ProductRepository on a SQL store
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List returns one page of products matching filter and the total match count.
func (r *GormProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	var products []models.Product
	err := q.Order("name ASC, id ASC").
		Offset(offset(filter.Page, filter.PerPage)).
		Limit(filter.PerPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list products")
	}
	return products, total, nil
}

// ListActive returns every sellable product ordered by name.
func (r *GormProductRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "list active products")
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *GormProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	return &product, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return errors.Wrap(err, "create product")
	}
	return nil
}

// Update writes every column of product, including zero values.
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).Select("*").Omit("created_at").Updates(product)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update product %d", product.ID)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes a product that has never been sold. Sold products keep
// their history and must be deactivated instead.
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sold int64
		if err := tx.Model(&models.SaleItem{}).Where("product_id = ?", id).Count(&sold).Error; err != nil {
			return errors.Wrapf(err, "count sale items of product %d", id)
		}
		if sold > 0 {
			return ErrProductInUse
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return errors.Wrapf(res.Error, "delete product %d", id)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// LowStock returns active products at or below threshold, emptiest first.
func (r *GormProductRepository) LowStock(ctx context.Context, threshold, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC, id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "list low stock products")
	}
	return products, nil
}
