package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tripweaver/trip_budget_app/internal/apperrors"
	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/internal/core/services"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRateForDate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindRatesInRange(ctx context.Context, fromCurrencyCode, toCurrencyCode string, start, end time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// dayOf normalizes a timestamp to its UTC calendar date at midnight.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ExchangeRateSvcFacade
	today        time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo)
	suite.today = dayOf(time.Now())
}

// --- ResolveRate ---

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_SameCurrency() {
	ctx := context.Background()

	rate, err := suite.service.ResolveRate(ctx, "THB", "THB", nil)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateForDate")
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_ExactMatch() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.85), RateDate: suite.today}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "EUR", suite.today).Return(stored, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "usd", "eur", nil)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromFloat(0.85)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_ReverseInverted() {
	ctx := context.Background()
	reversed := &domain.ExchangeRate{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: decimal.NewFromFloat(0.8), RateDate: suite.today}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "EUR", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateForDate", ctx, "EUR", "USD", suite.today).Return(reversed, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "EUR", nil)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromFloat(1.25)), "expected 1/0.8, got %s", rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_PastDateFallsBackToToday() {
	ctx := context.Background()
	target := suite.today.AddDate(0, 0, -5)
	stored := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "THB", Rate: decimal.NewFromInt(35), RateDate: suite.today}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "THB", target).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateForDate", ctx, "THB", "USD", target).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "THB", suite.today).Return(stored, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "THB", &target)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(35)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_LatestFallback() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "THB", Rate: decimal.NewFromFloat(34.5), RateDate: suite.today.AddDate(0, 0, -10)}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "THB", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateForDate", ctx, "THB", "USD", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "THB").Return(stored, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "THB", nil)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromFloat(34.5)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_LatestReverseInverted() {
	ctx := context.Background()
	reversed := &domain.ExchangeRate{FromCurrencyCode: "THB", ToCurrencyCode: "USD", Rate: decimal.NewFromFloat(0.025), RateDate: suite.today.AddDate(0, 0, -3)}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "THB", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateForDate", ctx, "THB", "USD", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "THB").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "THB", "USD").Return(reversed, nil).Once()

	rate, err := suite.service.ResolveRate(ctx, "USD", "THB", nil)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(40)), "expected 1/0.025, got %s", rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_NotFoundAfterFullChain() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindRateForDate", ctx, "AUD", "CAD", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateForDate", ctx, "CAD", "AUD", suite.today).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "AUD", "CAD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "CAD", "AUD").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveRate(ctx, "AUD", "CAD", nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveRate_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.ResolveRate(ctx, "US", "EUR", nil)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ResolveRate(ctx, "USD", "EU", nil)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ConvertAmount ---

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_Success() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.85), RateDate: suite.today}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "EUR", suite.today).Return(stored, nil).Once()

	converted, rate, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "USD", "EUR", nil)

	suite.Require().NoError(err)
	suite.True(converted.Equal(decimal.NewFromInt(85)))
	suite.True(rate.Equal(decimal.NewFromFloat(0.85)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

// --- SaveRate ---

func (suite *ExchangeRateServiceTestSuite) TestSaveRate_Success() {
	ctx := context.Background()
	date := time.Date(2026, 7, 3, 15, 42, 0, 0, time.UTC)

	suite.mockRateRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	saved, err := suite.service.SaveRate(ctx, "usd", "thb", decimal.NewFromInt(35), date)

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.NotEmpty(saved.ExchangeRateID)
	suite.Equal("USD", saved.FromCurrencyCode)
	suite.Equal("THB", saved.ToCurrencyCode)
	suite.True(saved.Rate.Equal(decimal.NewFromInt(35)))
	suite.Equal(time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC), saved.RateDate)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestSaveRate_SameCurrency() {
	ctx := context.Background()

	_, err := suite.service.SaveRate(ctx, "USD", "USD", decimal.NewFromInt(1), suite.today)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRate")
}

func (suite *ExchangeRateServiceTestSuite) TestSaveRate_NonPositiveRate() {
	ctx := context.Background()

	_, err := suite.service.SaveRate(ctx, "USD", "THB", decimal.Zero, suite.today)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRate")
}

// --- GetHistoricalRates ---

func (suite *ExchangeRateServiceTestSuite) TestGetHistoricalRates_FillsGapsFromNearestDay() {
	ctx := context.Background()
	days := 5
	start := suite.today.AddDate(0, 0, -(days - 1))

	exact := []domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "THB", Rate: decimal.NewFromInt(34), RateDate: start},
		{FromCurrencyCode: "USD", ToCurrencyCode: "THB", Rate: decimal.NewFromInt(36), RateDate: start.AddDate(0, 0, 2)},
	}
	suite.mockRateRepo.On("FindRatesInRange", ctx, "USD", "THB", start, suite.today).Return(exact, nil).Once()
	suite.mockRateRepo.On("FindRatesInRange", ctx, "THB", "USD", start, suite.today).Return([]domain.ExchangeRate{}, nil).Once()

	series, err := suite.service.GetHistoricalRates(ctx, []string{"USD"}, "THB", days)

	suite.Require().NoError(err)
	points := series["USD"]
	suite.Require().Len(points, days)
	// Day 1 is equidistant between days 0 and 2; the earlier day wins.
	suite.True(points[0].Rate.Equal(decimal.NewFromInt(34)))
	suite.True(points[1].Rate.Equal(decimal.NewFromInt(34)))
	suite.True(points[2].Rate.Equal(decimal.NewFromInt(36)))
	suite.True(points[3].Rate.Equal(decimal.NewFromInt(36)))
	suite.True(points[4].Rate.Equal(decimal.NewFromInt(36)))
	suite.Equal(start, points[0].Date)
	suite.Equal(suite.today, points[4].Date)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetHistoricalRates_ExactWinsOverInvertedReverse() {
	ctx := context.Background()
	days := 1

	exact := []domain.ExchangeRate{
		{FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.NewFromFloat(0.5), RateDate: suite.today},
	}
	reverse := []domain.ExchangeRate{
		{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: decimal.NewFromInt(4), RateDate: suite.today},
	}
	suite.mockRateRepo.On("FindRatesInRange", ctx, "USD", "EUR", suite.today, suite.today).Return(exact, nil).Once()
	suite.mockRateRepo.On("FindRatesInRange", ctx, "EUR", "USD", suite.today, suite.today).Return(reverse, nil).Once()

	series, err := suite.service.GetHistoricalRates(ctx, []string{"USD"}, "EUR", days)

	suite.Require().NoError(err)
	points := series["USD"]
	suite.Require().Len(points, 1)
	suite.True(points[0].Rate.Equal(decimal.NewFromFloat(0.5)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetHistoricalRates_ReverseOnlyIsInverted() {
	ctx := context.Background()
	days := 1

	reverse := []domain.ExchangeRate{
		{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: decimal.NewFromInt(4), RateDate: suite.today},
	}
	suite.mockRateRepo.On("FindRatesInRange", ctx, "USD", "EUR", suite.today, suite.today).Return([]domain.ExchangeRate{}, nil).Once()
	suite.mockRateRepo.On("FindRatesInRange", ctx, "EUR", "USD", suite.today, suite.today).Return(reverse, nil).Once()

	series, err := suite.service.GetHistoricalRates(ctx, []string{"USD"}, "EUR", days)

	suite.Require().NoError(err)
	points := series["USD"]
	suite.Require().Len(points, 1)
	suite.True(points[0].Rate.Equal(decimal.NewFromFloat(0.25)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetHistoricalRates_NoDataProducesEmptySeries() {
	ctx := context.Background()
	days := 7
	start := suite.today.AddDate(0, 0, -(days - 1))

	suite.mockRateRepo.On("FindRatesInRange", ctx, "AUD", "CAD", start, suite.today).Return([]domain.ExchangeRate{}, nil).Once()
	suite.mockRateRepo.On("FindRatesInRange", ctx, "CAD", "AUD", start, suite.today).Return([]domain.ExchangeRate{}, nil).Once()

	series, err := suite.service.GetHistoricalRates(ctx, []string{"AUD"}, "CAD", days)

	suite.Require().NoError(err)
	suite.Empty(series["AUD"])
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetHistoricalRates_SameCurrencyConstantSeries() {
	ctx := context.Background()
	days := 3

	series, err := suite.service.GetHistoricalRates(ctx, []string{"THB"}, "THB", days)

	suite.Require().NoError(err)
	points := series["THB"]
	suite.Require().Len(points, days)
	for _, point := range points {
		suite.True(point.Rate.Equal(decimal.NewFromInt(1)))
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRatesInRange")
}

func (suite *ExchangeRateServiceTestSuite) TestGetHistoricalRates_InvalidDays() {
	ctx := context.Background()

	_, err := suite.service.GetHistoricalRates(ctx, []string{"USD"}, "THB", 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestNewExchangeRateService(t *testing.T) {
	mockRateRepo := new(MockExchangeRateRepository)

	service := services.NewExchangeRateService(mockRateRepo)

	assert.NotNil(t, service)
	var _ portssvc.ExchangeRateSvcFacade = service
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
