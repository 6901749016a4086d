package services

import (
	"github.com/tripweaver/trip_budget_app/internal/core/ports/providers"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
	"github.com/tripweaver/trip_budget_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider providers.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)
	container.RateRefresh = NewRateRefreshService(repos.TripRepo, container.ExchangeRate, rateProvider, cfg.RateFetchDelay)
	container.Trip = NewTripService(repos.TripRepo, repos.CategoryRepo, container.Currency)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.TripRepo)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.TripRepo, repos.CategoryRepo, container.ExchangeRate)
	container.Statistics = NewStatisticsService(repos.TripRepo, repos.CategoryRepo, repos.ExpenseRepo)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.CurrencySvcFacade     = (*currencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.RateRefreshSvc        = (*rateRefreshService)(nil)
	_ portssvc.TripSvcFacade         = (*tripService)(nil)
	_ portssvc.CategorySvcFacade     = (*categoryService)(nil)
	_ portssvc.ExpenseSvcFacade      = (*expenseService)(nil)
	_ portssvc.StatisticsSvc         = (*statisticsService)(nil)
)
