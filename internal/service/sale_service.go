package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SalesPerPage is the page size of the sales history.
const SalesPerPage = 15

// TaxRate is the flat sales tax applied to every sale.
var TaxRate = decimal.RequireFromString("0.10")

// SaleService handles the point-of-sale transaction and the sales history
type SaleService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	now      Clock
	loc      *time.Location
	logger   *slog.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(sales repository.SaleRepository, products repository.ProductRepository, now Clock, loc *time.Location, logger *slog.Logger) *SaleService {
	return &SaleService{
		sales:    sales,
		products: products,
		now:      now,
		loc:      loc,
		logger:   logger,
	}
}

// Totals computes subtotal, tax and total for a list of requested items.
// Tax is rounded to cents; total is subtotal plus the rounded tax.
func Totals(items []models.SaleItemRequest) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(lineTotal(item))
	}
	tax = subtotal.Mul(TaxRate).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

// unitPrice is the requested price rounded to cents.
func unitPrice(item models.SaleItemRequest) decimal.Decimal {
	return item.UnitPrice.Round(2)
}

func lineTotal(item models.SaleItemRequest) decimal.Decimal {
	return unitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// RecordSale validates req, then persists the sale, its items and the stock
// decrements atomically. The caller-supplied unit price is charged, rounded
// to cents.
func (s *SaleService) RecordSale(ctx context.Context, req models.SaleRequest, userID uint) (*models.Sale, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	subtotal, tax, total := Totals(req.Items)
	now := s.now()

	sale := &models.Sale{
		Reference:     uuid.NewString(),
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		UserID:        userID,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
		Items:         make([]models.SaleItem, len(req.Items)),
	}
	for i, item := range req.Items {
		sale.Items[i] = models.SaleItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice(item),
			TotalPrice: lineTotal(item),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		"sale_id", sale.ID,
		"reference", sale.Reference,
		"items", len(sale.Items),
		"total", sale.Total.StringFixed(2),
		"user_id", userID,
	)

	return s.sales.GetByID(ctx, sale.ID)
}

// GetSale returns a sale with its cashier and items
func (s *SaleService) GetSale(ctx context.Context, id uint) (*models.Sale, error) {
	return s.sales.GetByID(ctx, id)
}

// ListSales returns one page of the sales history, newest first
func (s *SaleService) ListSales(ctx context.Context, page int) (models.Page[models.Sale], error) {
	if page < 1 {
		page = 1
	}
	sales, total, err := s.sales.List(ctx, page, SalesPerPage)
	if err != nil {
		return models.Page[models.Sale]{}, err
	}
	return models.NewPage(sales, total, page, SalesPerPage), nil
}

// SellableProducts lists the products offered on the sale form
func (s *SaleService) SellableProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.ListActive(ctx)
}

var exportHeaders = []string{"Reference", "Date", "Customer", "Payment Method", "Subtotal", "Tax", "Total", "Cashier"}

// ExportSales writes an xlsx workbook with one row per sale made between
// the shop-local calendar days from and to, inclusive.
func (s *SaleService) ExportSales(ctx context.Context, from, to models.Date, w io.Writer) error {
	if from.After(to.Time) {
		return ErrInvalidDateRange
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)

	sales, err := s.sales.Between(ctx, start.UTC(), end.UTC())
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, sale := range sales {
		customer, cashier := "", ""
		if sale.CustomerName != nil {
			customer = *sale.CustomerName
		}
		if sale.User != nil {
			cashier = sale.User.Name
		}
		subtotal, _ := sale.Subtotal.Round(2).Float64()
		tax, _ := sale.Tax.Round(2).Float64()
		total, _ := sale.Total.Round(2).Float64()

		row := []interface{}{
			sale.Reference,
			sale.CreatedAt.In(s.loc).Format("2006-01-02 15:04"),
			customer,
			string(sale.PaymentMethod),
			subtotal,
			tax,
			total,
			cashier,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
