package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/coffee-shop/internal/models"
	"github.com/Lixing-Zhang/coffee-shop/internal/repository"
)

// ExpenseService records operating costs such as rent and utilities.
type ExpenseService struct {
	repo   repository.ExpenseRepository
	logger *slog.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepository, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{repo: repo, logger: logger}
}

// RecordExpense persists an operating cost on its expense date.
func (s *ExpenseService) RecordExpense(ctx context.Context, req models.ExpenseRequest, userID uint) (*models.Expense, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description:   req.Description,
		Category:      req.Category,
		Amount:        req.Amount.Round(2),
		ExpenseDate:   req.ExpenseDate.Time,
		PaymentMethod: req.PaymentMethod,
		UserID:        userID,
		Notes:         req.Notes,
		ReceiptNumber: req.ReceiptNumber,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded", "expense_id", expense.ID, "amount", expense.Amount.StringFixed(2), "user_id", userID)
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, page int) (models.Page[models.Expense], error) {
	page, perPage := normalizePaging(page, DefaultPerPage)
	expenses, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return models.Page[models.Expense]{}, err
	}
	return models.NewPage(expenses, total, page, perPage), nil
}
