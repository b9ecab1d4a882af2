package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
	"github.com/shopspring/decimal"
)

// PurchaseService records supplies bought for the shop. Purchases never
// touch catalog stock.
type PurchaseService struct {
	repo   repository.PurchaseRepository
	now    Clock
	loc    *time.Location
	logger *slog.Logger
}

// NewPurchaseService creates a purchase service. Default purchase dates are
// taken in loc.
func NewPurchaseService(repo repository.PurchaseRepository, now Clock, loc *time.Location, logger *slog.Logger) *PurchaseService {
	return &PurchaseService{repo: repo, now: now, loc: loc, logger: logger}
}

// RecordPurchase persists a purchase whose total is the sum of its lines.
// PurchaseDate defaults to today in the shop's time zone. Unit prices are
// rounded to cents.
func (s *PurchaseService) RecordPurchase(ctx context.Context, req models.PurchaseRequest, userID uint) (*models.Purchase, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	date := models.NewDate(now.In(s.loc))
	if req.PurchaseDate != nil {
		date = *req.PurchaseDate
	}

	purchase := &models.Purchase{
		SupplierID:   req.SupplierID,
		UserID:       userID,
		PurchaseDate: date.Time,
		Notes:        req.Notes,
		Total:        decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
		Items:        make([]models.PurchaseItem, len(req.Items)),
	}
	for i, item := range req.Items {
		perUnit := item.UnitPrice.Round(2)
		line := perUnit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		purchase.Items[i] = models.PurchaseItem{
			ItemName:   item.ItemName,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			UnitPrice:  perUnit,
			TotalPrice: line,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		purchase.Total = purchase.Total.Add(line)
	}

	if err := s.repo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded", "purchase_id", purchase.ID, "total", purchase.Total.StringFixed(2), "user_id", userID)
	return purchase, nil
}

func (s *PurchaseService) ListPurchases(ctx context.Context, page int) (models.Page[models.Purchase], error) {
	page, perPage := normalizePaging(page, DefaultPerPage)
	purchases, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return models.Page[models.Purchase]{}, err
	}
	return models.NewPage(purchases, total, page, perPage), nil
}

// Suppliers lists the suppliers a purchase can reference.
func (s *PurchaseService) Suppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}
