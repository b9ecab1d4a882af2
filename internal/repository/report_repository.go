package repository

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesSummary aggregates the sales of a time window.
type SalesSummary struct {
	Total     decimal.Decimal
	Count     int64
	CashTotal decimal.Decimal
}

// ReportRepository runs the read-only aggregate queries behind the dashboard.
type ReportRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (SalesSummary, error)
	PurchasesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ExpensesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]models.TopProduct, error)
}

type GormReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// SalesSummary sums sales created in [from, to).
func (r *GormReportRepository) SalesSummary(ctx context.Context, from, to time.Time) (SalesSummary, error) {
	var row struct {
		Total      decimal.Decimal
		SalesCount int64
		CashTotal  decimal.Decimal
	}

	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select(
			"COALESCE(SUM(total), 0) AS total, COUNT(*) AS sales_count, "+
				"COALESCE(SUM(CASE WHEN payment_method = ? THEN total ELSE 0 END), 0) AS cash_total",
			models.PaymentCash,
		).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return SalesSummary{}, errors.Wrap(err, "summarize sales")
	}

	return SalesSummary{Total: row.Total, Count: row.SalesCount, CashTotal: row.CashTotal}, nil
}

// PurchasesTotal sums purchases recorded in [from, to).
func (r *GormReportRepository) PurchasesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total, err := r.sum(ctx, &models.Purchase{}, "total", "created_at", from, to)
	return total, errors.Wrap(err, "sum purchases")
}

// ExpensesTotal sums expenses whose expense_date falls in [from, to).
func (r *GormReportRepository) ExpensesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total, err := r.sum(ctx, &models.Expense{}, "amount", "expense_date", from, to)
	return total, errors.Wrap(err, "sum expenses")
}

func (r *GormReportRepository) sum(ctx context.Context, model interface{}, column, dateColumn string, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(model).
		Select("COALESCE(SUM(" + column + "), 0) AS total").
		Where(dateColumn+" >= ? AND "+dateColumn+" < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// TopProducts ranks products by units sold in sales created at or after
// since. Ties go to the lower product id.
func (r *GormReportRepository) TopProducts(ctx context.Context, since time.Time, limit int) ([]models.TopProduct, error) {
	var rows []struct {
		ProductID uint
		TotalSold int64
	}

	err := r.db.WithContext(ctx).
		Table("sale_items").
		Select("sale_items.product_id AS product_id, SUM(sale_items.quantity) AS total_sold").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.created_at >= ?", since).
		Group("sale_items.product_id").
		Order("total_sold DESC, sale_items.product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "rank top products")
	}
	if len(rows) == 0 {
		return []models.TopProduct{}, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ProductID
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "load top products")
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	top := make([]models.TopProduct, 0, len(rows))
	for _, row := range rows {
		p, ok := byID[row.ProductID]
		if !ok {
			continue
		}
		top = append(top, models.TopProduct{Product: p, TotalSold: row.TotalSold})
	}
	return top, nil
}
