package service

import (
	"testing"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/database/databasetest"
	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
	"github.com/Lixing-Zhang/coffee-shop/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fixedClock pins service time to 2026-10-15 14:30 UTC unless moved.
type fixedClock struct {
	t time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{t: time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time { return c.t }

type fixture struct {
	db       *gorm.DB
	clock    *fixedClock
	user     *models.User
	sales    *SaleService
	reports  *ReportService
	products *ProductService
}

func newFixture(t *testing.T, allowNegativeStock bool) *fixture {
	t.Helper()

	db := databasetest.New(t)
	clock := newFixedClock()
	log := logger.Discard()

	user := &models.User{Name: "Mike Cashier", Email: "cashier@coffeeshop.com", Password: "x", Role: models.RoleCashier}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db, allowNegativeStock)

	return &fixture{
		db:       db,
		clock:    clock,
		user:     user,
		sales:    NewSaleService(saleRepo, productRepo, clock.Now, time.UTC, log),
		reports:  NewReportService(repository.NewReportRepository(db), saleRepo, productRepo, clock.Now, time.UTC),
		products: NewProductService(productRepo, log),
	}
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:          name,
		Category:      "Coffee",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Unit:          "cup",
		IsActive:      true,
	}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	var p models.Product
	if err := f.db.First(&p, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.StockQuantity
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func line(productID uint, qty int, unitPrice string) models.SaleItemRequest {
	return models.SaleItemRequest{ProductID: productID, Quantity: qty, UnitPrice: price(unitPrice)}
}
