package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// ProductService handles business logic for products
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns one page of the catalog
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) (models.Page[models.Product], error) {
	filter.Page, filter.PerPage = normalizePaging(filter.Page, filter.PerPage)

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return models.NewPage(products, total, filter.Page, filter.PerPage), nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct adds a product to the catalog. Products are active unless
// the request says otherwise.
func (s *ProductService) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price.Round(2),
		StockQuantity: *req.StockQuantity,
		Unit:          req.Unit,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// UpdateProduct applies the non-nil fields of req
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req models.ProductUpdate) (*models.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = req.Price.Round(2)
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", "product_id", product.ID)
	return product, nil
}

// DeleteProduct removes a product that has never been sold
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}
