package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/core/services"
)

// --- Test Suite ---
type StatisticsServiceTestSuite struct {
	suite.Suite
	mockTripRepo     *MockTripRepository
	mockCategoryRepo *MockCategoryRepository
	mockExpenseRepo  *MockExpenseRepository
	service          portssvc.StatisticsSvc
	trip             *domain.Trip
	foodCategory     domain.Category
	stayCategory     domain.Category
}

func (suite *StatisticsServiceTestSuite) SetupTest() {
	suite.mockTripRepo = new(MockTripRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.service = services.NewStatisticsService(suite.mockTripRepo, suite.mockCategoryRepo, suite.mockExpenseRepo)

	suite.trip = &domain.Trip{
		TripID:       uuid.NewString(),
		Name:         "Bangkok",
		CurrencyCode: "THB",
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		TotalBudget:  decimal.NewFromInt(28000),
		DailyBudget:  decimal.NewFromInt(2000),
	}
	suite.foodCategory = domain.Category{
		CategoryID:       uuid.NewString(),
		TripID:           suite.trip.TripID,
		Name:             "Food & Dining",
		Color:            "#F59E0B",
		BudgetPercentage: decimal.NewFromInt(25),
	}
	suite.stayCategory = domain.Category{
		CategoryID:       uuid.NewString(),
		TripID:           suite.trip.TripID,
		Name:             "Accommodation",
		Color:            "#3B82F6",
		BudgetPercentage: decimal.NewFromInt(35),
	}
}

func (suite *StatisticsServiceTestSuite) categories() []domain.Category {
	return []domain.Category{suite.foodCategory, suite.stayCategory}
}

// --- GetDailyBudgetStatistics ---

func (suite *StatisticsServiceTestSuite) TestDailyStatistics_SingleDayExpense() {
	ctx := context.Background()
	target := suite.trip.StartDate

	lunch := domain.Expense{
		ExpenseID:            uuid.NewString(),
		TripID:               suite.trip.TripID,
		CategoryID:           suite.foodCategory.CategoryID,
		Title:                "Lunch",
		AmountInTripCurrency: decimal.NewFromInt(300),
		StartDate:            target,
	}

	suite.mockTripRepo.On("FindTripByID", ctx, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesTouchingDate", ctx, suite.trip.TripID, target).Return([]domain.Expense{lunch}, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByTrip", ctx, suite.trip.TripID).Return(suite.categories(), nil).Once()

	stats, err := suite.service.GetDailyBudgetStatistics(ctx, suite.trip.TripID, target)

	suite.Require().NoError(err)
	suite.Equal(1, stats.DaysIntoTrip)
	suite.Equal(14, stats.TotalDays)
	suite.True(stats.TotalSpentToday.Equal(decimal.NewFromInt(300)))
	suite.True(stats.RemainingToday.Equal(decimal.NewFromInt(1700)))
	suite.True(stats.PercentageUsedToday.Equal(decimal.NewFromInt(15)))
	suite.Equal(1, stats.ExpenseCountToday)
	suite.False(stats.IsOverBudget)

	// Food slice: 25% of 2000 = 500, with 300 spent.
	suite.Require().Len(stats.ByCategoryToday, 2)
	food := stats.ByCategoryToday[0]
	suite.Equal(suite.foodCategory.CategoryID, food.CategoryID)
	suite.True(food.DailyBudget.Equal(decimal.NewFromInt(500)))
	suite.True(food.TotalSpent.Equal(decimal.NewFromInt(300)))
	suite.True(food.RemainingBudget.Equal(decimal.NewFromInt(200)))

	// Target is the trip start, so no cumulative block.
	suite.Nil(stats.CumulativeBudgetPast)
	suite.Nil(stats.CumulativeSpentPast)
	suite.Nil(stats.CumulativeSavingsPast)
}

func (suite *StatisticsServiceTestSuite) TestDailyStatistics_SpanningExpenseShare() {
	ctx := context.Background()
	target := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)
	trip := *suite.trip
	trip.DailyBudget = decimal.Zero
	trip.TotalBudget = decimal.Zero

	hotelEnd := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	hotel := domain.Expense{
		ExpenseID:            uuid.NewString(),
		TripID:               trip.TripID,
		CategoryID:           suite.stayCategory.CategoryID,
		Title:                "Hotel",
		AmountInTripCurrency: decimal.NewFromInt(3000),
		StartDate:            time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		EndDate:              &hotelEnd,
	}

	suite.mockTripRepo.On("FindTripByID", ctx, trip.TripID).Return(&trip, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesTouchingDate", ctx, trip.TripID, target).Return([]domain.Expense{hotel}, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByTrip", ctx, trip.TripID).Return(suite.categories(), nil).Once()

	stats, err := suite.service.GetDailyBudgetStatistics(ctx, trip.TripID, target)

	suite.Require().NoError(err)
	// The 3-day stay contributes one even share on each covered day, and
	// counts as an expense only on its start date.
	suite.True(stats.TotalSpentToday.Equal(decimal.NewFromInt(1000)))
	suite.Equal(0, stats.ExpenseCountToday)
	// No daily budget configured: percentage stays zero and nothing is "over".
	suite.True(stats.PercentageUsedToday.IsZero())
	suite.False(stats.IsOverBudget)
	suite.Nil(stats.CumulativeBudgetPast)
}

func (suite *StatisticsServiceTestSuite) TestDailyStatistics_PercentageCapped() {
	ctx := context.Background()
	target := suite.trip.StartDate
	trip := *suite.trip
	trip.DailyBudget = decimal.NewFromInt(1)

	splurge := domain.Expense{
		ExpenseID:            uuid.NewString(),
		TripID:               trip.TripID,
		CategoryID:           suite.foodCategory.CategoryID,
		AmountInTripCurrency: decimal.NewFromInt(1000),
		StartDate:            target,
	}

	suite.mockTripRepo.On("FindTripByID", ctx, trip.TripID).Return(&trip, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesTouchingDate", ctx, trip.TripID, target).Return([]domain.Expense{splurge}, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByTrip", ctx, trip.TripID).Return(suite.categories(), nil).Once()

	stats, err := suite.service.GetDailyBudgetStatistics(ctx, trip.TripID, target)

	suite.Require().NoError(err)
	suite.True(stats.PercentageUsedToday.Equal(decimal.NewFromFloat(999.9)))
	suite.True(stats.IsOverBudget)
}

func (suite *StatisticsServiceTestSuite) TestDailyStatistics_CumulativeBlock() {
	ctx := context.Background()
	// Day 3 of the trip: past window covers days 1 and 2.
	target := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)
	pastEnd := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)

	dayOne := domain.Expense{
		ExpenseID:            uuid.NewString(),
		TripID:               suite.trip.TripID,
		CategoryID:           suite.foodCategory.CategoryID,
		AmountInTripCurrency: decimal.NewFromInt(1500),
		StartDate:            suite.trip.StartDate,
	}
	// A 3-day stay overlapping the past window on days 2 and 3 contributes
	// only its day-2 share here.
	stayEnd := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	stay := domain.Expense{
		ExpenseID:            uuid.NewString(),
		TripID:               suite.trip.TripID,
		CategoryID:           suite.stayCategory.CategoryID,
		AmountInTripCurrency: decimal.NewFromInt(3000),
		StartDate:            pastEnd,
		EndDate:              &stayEnd,
	}

	suite.mockTripRepo.On("FindTripByID", ctx, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockExpenseRepo.On("FindExpensesTouchingDate", ctx, suite.trip.TripID, target).Return([]domain.Expense{}, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByTrip", ctx, suite.trip.TripID).Return(suite.categories(), nil).Once()
	suite.mockExpenseRepo.On("FindExpensesOverlappingRange", ctx, suite.trip.TripID, suite.trip.StartDate, pastEnd).
		Return([]domain.Expense{dayOne, stay}, nil).Once()

	stats, err := suite.service.GetDailyBudgetStatistics(ctx, suite.trip.TripID, target)

	suite.Require().NoError(err)
	suite.Require().NotNil(stats.CumulativeBudgetPast)
	suite.Require().NotNil(stats.CumulativeSpentPast)
	suite.Require().NotNil(stats.CumulativeSavingsPast)
	// 2 past days x 2000 budget; 1500 + one 1000 share spent.
	suite.True(stats.CumulativeBudgetPast.Equal(decimal.NewFromInt(4000)))
	suite.True(stats.CumulativeSpentPast.Equal(decimal.NewFromInt(2500)))
	suite.True(stats.CumulativeSavingsPast.Equal(decimal.NewFromInt(1500)))
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *StatisticsServiceTestSuite) TestDailyStatistics_TripNotFound() {
	ctx := context.Background()
	tripID := uuid.NewString()

	suite.mockTripRepo.On("FindTripByID", ctx, tripID).Return(nil, apperrors.ErrNotFound).Once()

	stats, err := suite.service.GetDailyBudgetStatistics(ctx, tripID, time.Now())

	suite.Require().Error(err)
	suite.Nil(stats)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- GetTripStatistics ---

func (suite *StatisticsServiceTestSuite) TestTripStatistics_Aggregates() {
	ctx := context.Background()

	dayTwo := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)
	expenses := []domain.Expense{
		{
			ExpenseID:            uuid.NewString(),
			TripID:               suite.trip.TripID,
			CategoryID:           suite.foodCategory.CategoryID,
			AmountInTripCurrency: decimal.NewFromInt(4000),
			StartDate:            suite.trip.StartDate,
		},
		{
			ExpenseID:            uuid.NewString(),
			TripID:               suite.trip.TripID,
			CategoryID:           suite.stayCategory.CategoryID,
			AmountInTripCurrency: decimal.NewFromInt(10000),
			StartDate:            dayTwo,
		},
	}

	suite.mockTripRepo.On("FindTripByID", ctx, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockExpenseRepo.On("FindAllExpensesByTrip", ctx, suite.trip.TripID).Return(expenses, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByTrip", ctx, suite.trip.TripID).Return(suite.categories(), nil).Once()

	stats, err := suite.service.GetTripStatistics(ctx, suite.trip.TripID)

	suite.Require().NoError(err)
	suite.Equal(2, stats.TotalExpenses)
	suite.True(stats.TotalSpent.Equal(decimal.NewFromInt(14000)))
	suite.True(stats.RemainingBudget.Equal(decimal.NewFromInt(14000)))
	suite.True(stats.PercentageUsed.Equal(decimal.NewFromInt(50)))
	suite.True(stats.AverageDaily.Equal(decimal.NewFromInt(1000)))

	suite.Require().Len(stats.ByCategory, 2)
	food := stats.ByCategory[0]
	suite.Equal(suite.foodCategory.CategoryID, food.CategoryID)
	suite.True(food.TotalSpent.Equal(decimal.NewFromInt(4000)))
	suite.Equal(1, food.Count)

	suite.Require().Len(stats.ByDate, 2)
	suite.Equal(suite.trip.StartDate, stats.ByDate[0].Date)
	suite.Equal(dayTwo, stats.ByDate[1].Date)
}

func (suite *StatisticsServiceTestSuite) TestTripStatistics_PercentageCappedAtHundred() {
	ctx := context.Background()
	trip := *suite.trip
	trip.TotalBudget = decimal.NewFromInt(1000)

	expenses := []domain.Expense{
		{
			ExpenseID:            uuid.NewString(),
			TripID:               trip.TripID,
			CategoryID:           suite.foodCategory.CategoryID,
			AmountInTripCurrency: decimal.NewFromInt(5000),
			StartDate:            trip.StartDate,
		},
	}

	suite.mockTripRepo.On("FindTripByID", ctx, trip.TripID).Return(&trip, nil).Once()
	suite.mockExpenseRepo.On("FindAllExpensesByTrip", ctx, trip.TripID).Return(expenses, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByTrip", ctx, trip.TripID).Return(suite.categories(), nil).Once()

	stats, err := suite.service.GetTripStatistics(ctx, trip.TripID)

	suite.Require().NoError(err)
	suite.True(stats.PercentageUsed.Equal(decimal.NewFromInt(100)))
	suite.True(stats.RemainingBudget.Equal(decimal.NewFromInt(-4000)))
}

func (suite *StatisticsServiceTestSuite) TestTripStatistics_NoExpenses() {
	ctx := context.Background()

	suite.mockTripRepo.On("FindTripByID", ctx, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockExpenseRepo.On("FindAllExpensesByTrip", ctx, suite.trip.TripID).Return([]domain.Expense{}, nil).Once()
	suite.mockCategoryRepo.On("ListCategoriesByTrip", ctx, suite.trip.TripID).Return(suite.categories(), nil).Once()

	stats, err := suite.service.GetTripStatistics(ctx, suite.trip.TripID)

	suite.Require().NoError(err)
	suite.Equal(0, stats.TotalExpenses)
	suite.True(stats.TotalSpent.IsZero())
	suite.True(stats.PercentageUsed.IsZero())
	suite.True(stats.AverageDaily.IsZero())
	suite.Empty(stats.ByDate)
}

// --- Run Suite ---
func TestStatisticsService(t *testing.T) {
	suite.Run(t, new(StatisticsServiceTestSuite))
}
