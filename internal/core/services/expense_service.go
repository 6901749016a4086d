package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/dto"
)

// expenseService provides business logic for expenses. Every write snapshots
// the conversion into the trip's settlement currency; the snapshot is only
// recomputed when amount, currency or start date change.
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	tripRepo     portsrepo.TripReader
	categoryRepo portsrepo.CategoryReader
	rateSvc      portssvc.ExchangeRateReaderSvc
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, tripRepo portsrepo.TripReader, categoryRepo portsrepo.CategoryReader, rateSvc portssvc.ExchangeRateReaderSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:  expenseRepo,
		tripRepo:     tripRepo,
		categoryRepo: categoryRepo,
		rateSvc:      rateSvc,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// snapshotConversion resolves the rate converting the expense currency into
// the trip currency on the expense start date. An unresolvable pair rejects
// the write with ErrConversion; silently storing an unconverted amount would
// corrupt every statistic downstream.
func (s *expenseService) snapshotConversion(ctx context.Context, amount decimal.Decimal, currencyCode, tripCurrencyCode string, startDate time.Time) (decimal.Decimal, decimal.Decimal, error) {
	converted, rate, err := s.rateSvc.ConvertAmount(ctx, amount, currencyCode, tripCurrencyCode, &startDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: no exchange rate available for %s to %s", apperrors.ErrConversion, currencyCode, tripCurrencyCode)
		}
		return decimal.Zero, decimal.Zero, err
	}
	return converted, rate, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, tripID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip for expense: %w", err)
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID, tripID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category '%s' not found in trip", apperrors.ErrValidation, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to validate expense category: %w", err)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	startDate := truncateToDay(req.StartDate)
	var endDate *time.Time
	if req.EndDate != nil {
		normalized := truncateToDay(*req.EndDate)
		if normalized.Before(startDate) {
			return nil, fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
		}
		endDate = &normalized
	}

	currencyCode := strings.ToUpper(req.CurrencyCode)
	converted, rate, err := s.snapshotConversion(ctx, req.Amount, currencyCode, trip.CurrencyCode, startDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:            uuid.NewString(),
		TripID:               tripID,
		CategoryID:           req.CategoryID,
		Title:                req.Title,
		Description:          req.Description,
		Amount:               req.Amount,
		CurrencyCode:         currencyCode,
		ExchangeRate:         rate,
		AmountInTripCurrency: converted,
		StartDate:            startDate,
		EndDate:              endDate,
		PaymentMethod:        req.PaymentMethod,
		Location:             req.Location,
		Notes:                req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to save expense", "trip_id", tripID, "title", req.Title)
		return nil, fmt.Errorf("failed to create expense in service: %w", err)
	}

	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, tripID, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense in service: %w", err)
	}
	return expense, nil
}

func (s *expenseService) ListExpensesByTrip(ctx context.Context, tripID string, filter portsrepo.ExpenseListFilter) (*dto.ListExpensesResponse, error) {
	if _, err := s.tripRepo.FindTripByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("failed to find trip for expense list: %w", err)
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByTrip(ctx, tripID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in service: %w", err)
	}

	resp := dto.ToListExpensesResponse(expenses, nextToken)
	return &resp, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, tripID, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense for update: %w", err)
	}
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip for expense update: %w", err)
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID, tripID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: category '%s' not found in trip", apperrors.ErrValidation, *req.CategoryID)
			}
			return nil, fmt.Errorf("failed to validate expense category: %w", err)
		}
		expense.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		expense.Title = *req.Title
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.PaymentMethod != nil {
		expense.PaymentMethod = *req.PaymentMethod
	}
	if req.Location != nil {
		expense.Location = *req.Location
	}
	if req.Notes != nil {
		expense.Notes = *req.Notes
	}

	needsSnapshot := false
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
		needsSnapshot = true
	}
	if req.CurrencyCode != nil {
		expense.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
		needsSnapshot = true
	}
	if req.StartDate != nil {
		expense.StartDate = truncateToDay(*req.StartDate)
		needsSnapshot = true
	}
	if req.ClearEndDate {
		expense.EndDate = nil
	} else if req.EndDate != nil {
		normalized := truncateToDay(*req.EndDate)
		expense.EndDate = &normalized
	}
	if expense.EndDate != nil && expense.EndDate.Before(expense.StartDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	}

	if needsSnapshot {
		converted, rate, err := s.snapshotConversion(ctx, expense.Amount, expense.CurrencyCode, trip.CurrencyCode, expense.StartDate)
		if err != nil {
			return nil, err
		}
		expense.AmountInTripCurrency = converted
		expense.ExchangeRate = rate
	}

	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "failed to update expense", "expense_id", expenseID)
		return nil, fmt.Errorf("failed to update expense in service: %w", err)
	}

	return expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	if err := s.expenseRepo.DeleteExpense(ctx, expenseID, tripID); err != nil {
		return fmt.Errorf("failed to delete expense in service: %w", err)
	}
	return nil
}
