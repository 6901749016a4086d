package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/core/services"
	"github.com/tripweaver/trip_budget_app/internal/dto"
)

// --- Mock TripRepository ---
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) FindTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripRepository) ListTrips(ctx context.Context, limit, offset int) ([]domain.Trip, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trip), args.Error(1)
}

func (m *MockTripRepository) ListDistinctCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) UpdateTrip(ctx context.Context, trip domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) DeleteTrip(ctx context.Context, tripID string) error {
	args := m.Called(ctx, tripID)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID, tripID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByTrip(ctx context.Context, tripID string) ([]domain.Category, error) {
	args := m.Called(ctx, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SaveCategories(ctx context.Context, categories []domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID, tripID string) error {
	args := m.Called(ctx, categoryID, tripID)
	return args.Error(0)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite ---
type TripServiceTestSuite struct {
	suite.Suite
	mockTripRepo     *MockTripRepository
	mockCategoryRepo *MockCategoryRepository
	mockCurrencySvc  *MockCurrencyService
	service          portssvc.TripSvcFacade
}

func (suite *TripServiceTestSuite) SetupTest() {
	suite.mockTripRepo = new(MockTripRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewTripService(suite.mockTripRepo, suite.mockCategoryRepo, suite.mockCurrencySvc)
}

func decPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// --- CreateTrip ---

func (suite *TripServiceTestSuite) TestCreateTrip_DerivesDailyFromTotal() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Name:         "Tokyo",
		CurrencyCode: "JPY",
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC),
		TotalBudget:  decPtr(decimal.NewFromInt(3000)),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "JPY").Return(&domain.Currency{CurrencyCode: "JPY"}, nil).Once()
	suite.mockTripRepo.On("SaveTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.AnythingOfType("[]domain.Category")).Return(nil).Once()

	trip, err := suite.service.CreateTrip(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(trip)
	suite.Equal(3, trip.LengthDays())
	suite.True(trip.TotalBudget.Equal(decimal.NewFromInt(3000)))
	suite.True(trip.DailyBudget.Equal(decimal.NewFromInt(1000)))
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestCreateTrip_DerivesTotalFromDaily() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Name:         "Bangkok",
		CurrencyCode: "THB",
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		DailyBudget:  decPtr(decimal.NewFromInt(2000)),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "THB").Return(&domain.Currency{CurrencyCode: "THB"}, nil).Once()
	suite.mockTripRepo.On("SaveTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.AnythingOfType("[]domain.Category")).Return(nil).Once()

	trip, err := suite.service.CreateTrip(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(14, trip.LengthDays())
	suite.True(trip.DailyBudget.Equal(decimal.NewFromInt(2000)))
	suite.True(trip.TotalBudget.Equal(decimal.NewFromInt(28000)))
}

func (suite *TripServiceTestSuite) TestCreateTrip_BothBudgetsKeptAsGiven() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Name:         "Lisbon",
		CurrencyCode: "EUR",
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		TotalBudget:  decPtr(decimal.NewFromInt(5000)),
		DailyBudget:  decPtr(decimal.NewFromInt(400)),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockTripRepo.On("SaveTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.AnythingOfType("[]domain.Category")).Return(nil).Once()

	trip, err := suite.service.CreateTrip(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(trip.TotalBudget.Equal(decimal.NewFromInt(5000)))
	suite.True(trip.DailyBudget.Equal(decimal.NewFromInt(400)))
}

func (suite *TripServiceTestSuite) TestCreateTrip_NoBudgets() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Name:         "Weekend",
		CurrencyCode: "EUR",
		StartDate:    time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockTripRepo.On("SaveTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.AnythingOfType("[]domain.Category")).Return(nil).Once()

	trip, err := suite.service.CreateTrip(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(trip.TotalBudget.IsZero())
	suite.True(trip.DailyBudget.IsZero())
}

func (suite *TripServiceTestSuite) TestCreateTrip_SeedsDefaultCategories() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateTripRequest{
		Name:         "Rome",
		CurrencyCode: "EUR",
		StartDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}

	var seeded []domain.Category
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()
	suite.mockTripRepo.On("SaveTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()
	suite.mockCategoryRepo.On("SaveCategories", ctx, mock.AnythingOfType("[]domain.Category")).
		Run(func(args mock.Arguments) {
			seeded = args.Get(1).([]domain.Category)
		}).Return(nil).Once()

	trip, err := suite.service.CreateTrip(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().Len(seeded, 8)
	suite.Equal("Accommodation", seeded[0].Name)
	suite.True(seeded[0].BudgetPercentage.Equal(decimal.NewFromInt(35)))
	percentageSum := decimal.Zero
	for i, category := range seeded {
		suite.Equal(trip.TripID, category.TripID)
		suite.True(category.IsDefault)
		suite.Equal(i, category.DisplayOrder)
		suite.Equal(creatorUserID, category.CreatedBy)
		percentageSum = percentageSum.Add(category.BudgetPercentage)
	}
	suite.True(percentageSum.Equal(decimal.NewFromInt(100)))
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestCreateTrip_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Name:         "Nowhere",
		CurrencyCode: "XXX",
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	trip, err := suite.service.CreateTrip(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(trip)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "SaveTrip")
}

func (suite *TripServiceTestSuite) TestCreateTrip_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Name:         "Backwards",
		CurrencyCode: "EUR",
		StartDate:    time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	trip, err := suite.service.CreateTrip(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(trip)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "SaveTrip")
}

// --- UpdateTrip ---

func (suite *TripServiceTestSuite) TestUpdateTrip_RederivesDailyFromTotal() {
	ctx := context.Background()
	tripID := uuid.NewString()
	existing := &domain.Trip{
		TripID:       tripID,
		Name:         "Tokyo",
		CurrencyCode: "JPY",
		StartDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		TotalBudget:  decimal.NewFromInt(1000),
		DailyBudget:  decimal.NewFromInt(100),
	}
	req := dto.UpdateTripRequest{
		TotalBudget: decPtr(decimal.NewFromInt(2000)),
	}

	suite.mockTripRepo.On("FindTripByID", ctx, tripID).Return(existing, nil).Once()
	suite.mockTripRepo.On("UpdateTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()

	updated, err := suite.service.UpdateTrip(ctx, tripID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(updated.TotalBudget.Equal(decimal.NewFromInt(2000)))
	suite.True(updated.DailyBudget.Equal(decimal.NewFromInt(200)))
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestUpdateTrip_EndBeforeStart() {
	ctx := context.Background()
	tripID := uuid.NewString()
	existing := &domain.Trip{
		TripID:    tripID,
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
	}
	badEnd := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	req := dto.UpdateTripRequest{EndDate: &badEnd}

	suite.mockTripRepo.On("FindTripByID", ctx, tripID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateTrip(ctx, tripID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "UpdateTrip")
}

func (suite *TripServiceTestSuite) TestUpdateTrip_NotFound() {
	ctx := context.Background()
	tripID := uuid.NewString()

	suite.mockTripRepo.On("FindTripByID", ctx, tripID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateTrip(ctx, tripID, dto.UpdateTripRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListTrips / DeleteTrip ---

func (suite *TripServiceTestSuite) TestListTrips_DefaultsLimit() {
	ctx := context.Background()

	suite.mockTripRepo.On("ListTrips", ctx, 20, 0).Return([]domain.Trip{}, nil).Once()

	trips, err := suite.service.ListTrips(ctx, 0, -5)

	suite.Require().NoError(err)
	suite.NotNil(trips)
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestDeleteTrip_NotFound() {
	ctx := context.Background()
	tripID := uuid.NewString()

	suite.mockTripRepo.On("DeleteTrip", ctx, tripID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTrip(ctx, tripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestTripService(t *testing.T) {
	suite.Run(t, new(TripServiceTestSuite))
}
