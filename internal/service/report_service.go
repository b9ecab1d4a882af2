package service

import (
	"context"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
	"github.com/shopspring/decimal"
)

// Dashboard defaults.
const (
	RecentSalesLimit  = 5
	TopProductsWindow = 30
	TopProductsLimit  = 5
	LowStockThreshold = 10
	LowStockListLimit = 5
)

// TodayStats covers sales since local midnight.
type TodayStats struct {
	Sales      decimal.Decimal `json:"sales"`
	SalesCount int64           `json:"sales_count"`
	CashSales  decimal.Decimal `json:"cash_sales"`
}

// MonthlyStats covers the current calendar month. Profit is sales minus
// purchases minus expenses.
type MonthlyStats struct {
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"`
}

// Dashboard is the payload of the landing page.
type Dashboard struct {
	TodayStats       TodayStats          `json:"todayStats"`
	MonthlyStats     MonthlyStats        `json:"monthlyStats"`
	RecentSales      []models.Sale       `json:"recentSales"`
	TopProducts      []models.TopProduct `json:"topProducts"`
	LowStockProducts []models.Product    `json:"lowStockProducts"`
}

// ReportService computes the read-only statistics behind the dashboard.
// Day and month boundaries follow the shop's time zone.
type ReportService struct {
	reports  repository.ReportRepository
	sales    repository.SaleRepository
	products repository.ProductRepository
	now      Clock
	loc      *time.Location
}

// NewReportService creates a report service whose days start at midnight in loc.
func NewReportService(reports repository.ReportRepository, sales repository.SaleRepository, products repository.ProductRepository, now Clock, loc *time.Location) *ReportService {
	return &ReportService{
		reports:  reports,
		sales:    sales,
		products: products,
		now:      now,
		loc:      loc,
	}
}

// TodayStats aggregates sales created since local midnight.
func (s *ReportService) TodayStats(ctx context.Context) (TodayStats, error) {
	from := startOfDay(s.now(), s.loc)
	to := from.AddDate(0, 0, 1)

	summary, err := s.reports.SalesSummary(ctx, from.UTC(), to.UTC())
	if err != nil {
		return TodayStats{}, err
	}
	return TodayStats{
		Sales:      summary.Total.Round(2),
		SalesCount: summary.Count,
		CashSales:  summary.CashTotal.Round(2),
	}, nil
}

// MonthlyStats aggregates the current calendar month. Expenses are matched
// on their expense date, sales and purchases on when they were recorded.
func (s *ReportService) MonthlyStats(ctx context.Context) (MonthlyStats, error) {
	from := startOfMonth(s.now(), s.loc)
	to := from.AddDate(0, 1, 0)

	summary, err := s.reports.SalesSummary(ctx, from.UTC(), to.UTC())
	if err != nil {
		return MonthlyStats{}, err
	}
	purchases, err := s.reports.PurchasesTotal(ctx, from.UTC(), to.UTC())
	if err != nil {
		return MonthlyStats{}, err
	}

	// expense_date is a calendar date stored as midnight UTC.
	dayFrom := models.NewDate(from).Time
	dayTo := models.NewDate(to).Time
	expenses, err := s.reports.ExpensesTotal(ctx, dayFrom, dayTo)
	if err != nil {
		return MonthlyStats{}, err
	}

	stats := MonthlyStats{
		Sales:     summary.Total.Round(2),
		Purchases: purchases.Round(2),
		Expenses:  expenses.Round(2),
	}
	stats.Profit = stats.Sales.Sub(stats.Purchases).Sub(stats.Expenses)
	return stats, nil
}

// RecentSales returns the latest sales with their cashier and items.
func (s *ReportService) RecentSales(ctx context.Context, limit int) ([]models.Sale, error) {
	sales, err := s.sales.Recent(ctx, limit)
	if sales == nil && err == nil {
		sales = []models.Sale{}
	}
	return sales, err
}

// TopProducts ranks products by units sold over the trailing windowDays.
func (s *ReportService) TopProducts(ctx context.Context, windowDays, limit int) ([]models.TopProduct, error) {
	since := s.now().UTC().AddDate(0, 0, -windowDays)
	return s.reports.TopProducts(ctx, since, limit)
}

// LowStockProducts lists active products with stock at or below threshold.
func (s *ReportService) LowStockProducts(ctx context.Context, threshold, limit int) ([]models.Product, error) {
	products, err := s.products.LowStock(ctx, threshold, limit)
	if products == nil && err == nil {
		products = []models.Product{}
	}
	return products, err
}

// Dashboard composes every statistic shown on the landing page.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)

	if d.TodayStats, err = s.TodayStats(ctx); err != nil {
		return nil, err
	}
	if d.MonthlyStats, err = s.MonthlyStats(ctx); err != nil {
		return nil, err
	}
	if d.RecentSales, err = s.RecentSales(ctx, RecentSalesLimit); err != nil {
		return nil, err
	}
	if d.TopProducts, err = s.TopProducts(ctx, TopProductsWindow, TopProductsLimit); err != nil {
		return nil, err
	}
	if d.LowStockProducts, err = s.LowStockProducts(ctx, LowStockThreshold, LowStockListLimit); err != nil {
		return nil, err
	}
	return &d, nil
}
