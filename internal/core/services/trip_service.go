package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/dto"
)

// tripService provides business logic for trips. Creating a trip also seeds
// its default category set.
type tripService struct {
	BaseService
	tripRepo     portsrepo.TripRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	currencySvc  portssvc.CurrencyReaderSvc
}

// NewTripService creates a new trip service.
func NewTripService(tripRepo portsrepo.TripRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, currencySvc portssvc.CurrencyReaderSvc) portssvc.TripSvcFacade {
	return &tripService{
		tripRepo:     tripRepo,
		categoryRepo: categoryRepo,
		currencySvc:  currencySvc,
	}
}

var _ portssvc.TripSvcFacade = (*tripService)(nil)

// deriveBudgets fills in whichever of total/daily is missing from the other
// using the inclusive trip length. When both are given, both are kept as-is.
func deriveBudgets(total, daily *decimal.Decimal, lengthDays int) (decimal.Decimal, decimal.Decimal) {
	days := decimal.NewFromInt(int64(lengthDays))
	switch {
	case total != nil && daily == nil:
		return *total, total.Div(days)
	case daily != nil && total == nil:
		return daily.Mul(days), *daily
	case total != nil && daily != nil:
		return *total, *daily
	default:
		return decimal.Zero, decimal.Zero
	}
}

func (s *tripService) CreateTrip(ctx context.Context, req dto.CreateTripRequest, creatorUserID string) (*domain.Trip, error) {
	startDate := truncateToDay(req.StartDate)
	endDate := truncateToDay(req.EndDate)
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	}

	if _, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate trip currency '%s': %w", req.CurrencyCode, err)
	}

	now := time.Now()
	trip := domain.Trip{
		TripID:       uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		CurrencyCode: req.CurrencyCode,
		StartDate:    startDate,
		EndDate:      endDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	trip.TotalBudget, trip.DailyBudget = deriveBudgets(req.TotalBudget, req.DailyBudget, trip.LengthDays())

	if err := s.tripRepo.SaveTrip(ctx, trip); err != nil {
		s.LogError(ctx, err, "failed to save trip", "trip_name", req.Name)
		return nil, fmt.Errorf("failed to create trip in service: %w", err)
	}

	if err := s.seedDefaultCategories(ctx, trip.TripID, creatorUserID); err != nil {
		// The trip itself is persisted; surface the error so the client
		// knows its categories are incomplete.
		s.LogError(ctx, err, "failed to seed default categories", "trip_id", trip.TripID)
		return nil, fmt.Errorf("trip created but default categories failed: %w", err)
	}

	s.LogInfo(ctx, "trip created", "trip_id", trip.TripID, "currency", trip.CurrencyCode)
	return &trip, nil
}

func (s *tripService) seedDefaultCategories(ctx context.Context, tripID, creatorUserID string) error {
	now := time.Now()
	categories := make([]domain.Category, len(defaultCategories))
	for i, def := range defaultCategories {
		categories[i] = domain.Category{
			CategoryID:       uuid.NewString(),
			TripID:           tripID,
			Name:             def.name,
			Color:            def.color,
			Icon:             def.icon,
			BudgetPercentage: def.budgetPercentage,
			IsDefault:        true,
			DisplayOrder:     i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}
	return s.categoryRepo.SaveCategories(ctx, categories)
}

func (s *tripService) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip in service: %w", err)
	}
	return trip, nil
}

func (s *tripService) ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	trips, err := s.tripRepo.ListTrips(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips in service: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

func (s *tripService) UpdateTrip(ctx context.Context, tripID string, req dto.UpdateTripRequest, requestingUserID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip for update: %w", err)
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.Description != nil {
		trip.Description = *req.Description
	}
	if req.StartDate != nil {
		trip.StartDate = truncateToDay(*req.StartDate)
	}
	if req.EndDate != nil {
		trip.EndDate = truncateToDay(*req.EndDate)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return nil, fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	}

	// When one budget figure changes without the other, the missing one is
	// re-derived against the (possibly updated) trip length.
	days := decimal.NewFromInt(int64(trip.LengthDays()))
	switch {
	case req.TotalBudget != nil && req.DailyBudget == nil:
		trip.TotalBudget = *req.TotalBudget
		trip.DailyBudget = req.TotalBudget.Div(days)
	case req.DailyBudget != nil && req.TotalBudget == nil:
		trip.DailyBudget = *req.DailyBudget
		trip.TotalBudget = req.DailyBudget.Mul(days)
	case req.TotalBudget != nil && req.DailyBudget != nil:
		trip.TotalBudget = *req.TotalBudget
		trip.DailyBudget = *req.DailyBudget
	}

	trip.LastUpdatedAt = time.Now()
	trip.LastUpdatedBy = requestingUserID

	if err := s.tripRepo.UpdateTrip(ctx, *trip); err != nil {
		s.LogError(ctx, err, "failed to update trip", "trip_id", tripID)
		return nil, fmt.Errorf("failed to update trip in service: %w", err)
	}

	return trip, nil
}

func (s *tripService) DeleteTrip(ctx context.Context, tripID string) error {
	if err := s.tripRepo.DeleteTrip(ctx, tripID); err != nil {
		return fmt.Errorf("failed to delete trip in service: %w", err)
	}
	s.LogInfo(ctx, "trip deleted", "trip_id", tripID)
	return nil
}
