package service

import (
	"errors"

	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
)

// Errors surfaced to handlers. Store lookups reuse the repository sentinels
// so errors.Is works across layers.
var (
	ErrProductNotFound    = repository.ErrProductNotFound
	ErrSaleNotFound       = repository.ErrSaleNotFound
	ErrSupplierNotFound   = repository.ErrSupplierNotFound
	ErrInsufficientStock  = repository.ErrInsufficientStock
	ErrProductInUse       = repository.ErrProductInUse
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidDateRange   = errors.New("from must not be after to")
)
