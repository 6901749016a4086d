package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripweaver/trip_budget_app/internal/core/domain"
	portsrepo "github.com/tripweaver/trip_budget_app/internal/core/ports/repositories"
	portssvc "github.com/tripweaver/trip_budget_app/internal/core/ports/services"
)

// percentageCap bounds the reported daily usage percentage so a tiny budget
// with a huge spend does not produce absurd figures.
var percentageCap = decimal.NewFromFloat(999.9)

var hundred = decimal.NewFromInt(100)

// statisticsService computes spending aggregates from stored conversion
// snapshots. It never resolves exchange rates itself.
type statisticsService struct {
	BaseService
	tripRepo     portsrepo.TripReader
	categoryRepo portsrepo.CategoryReader
	expenseRepo  portsrepo.ExpenseReader
}

// NewStatisticsService creates a new statistics service.
func NewStatisticsService(tripRepo portsrepo.TripReader, categoryRepo portsrepo.CategoryReader, expenseRepo portsrepo.ExpenseReader) portssvc.StatisticsSvc {
	return &statisticsService{
		tripRepo:     tripRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

var _ portssvc.StatisticsSvc = (*statisticsService)(nil)

func (s *statisticsService) GetDailyBudgetStatistics(ctx context.Context, tripID string, targetDate time.Time) (*domain.DailyBudgetStatistics, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip for daily statistics: %w", err)
	}

	target := truncateToDay(targetDate)
	dailyBudget := trip.DailyBudget

	todayExpenses, err := s.expenseRepo.FindExpensesTouchingDate(ctx, tripID, target)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for daily statistics: %w", err)
	}

	totalSpentToday := decimal.Zero
	expenseCountToday := 0
	spentByCategory := make(map[string]decimal.Decimal)
	for _, expense := range todayExpenses {
		share := expense.DailyShare()
		totalSpentToday = totalSpentToday.Add(share)
		spentByCategory[expense.CategoryID] = spentByCategory[expense.CategoryID].Add(share)
		// Only expenses that start on the target day count as "today's"
		// expenses; a spanning stay contributes its share without
		// inflating the count on every covered day.
		if expense.StartDate.Equal(target) {
			expenseCountToday++
		}
	}

	percentageUsed := decimal.Zero
	if dailyBudget.IsPositive() {
		percentageUsed = totalSpentToday.Div(dailyBudget).Mul(hundred)
		if percentageUsed.GreaterThan(percentageCap) {
			percentageUsed = percentageCap
		}
	}

	stats := &domain.DailyBudgetStatistics{
		TripID:              tripID,
		Date:                target,
		DailyBudget:         dailyBudget,
		DaysIntoTrip:        daysBetweenDates(trip.StartDate, target) + 1,
		TotalDays:           trip.LengthDays(),
		TotalSpentToday:     totalSpentToday,
		RemainingToday:      dailyBudget.Sub(totalSpentToday),
		PercentageUsedToday: percentageUsed,
		ExpenseCountToday:   expenseCountToday,
		IsOverBudget:        dailyBudget.IsPositive() && totalSpentToday.GreaterThan(dailyBudget),
	}

	stats.ByCategoryToday, err = s.categoryBreakdown(ctx, tripID, dailyBudget, spentByCategory)
	if err != nil {
		return nil, err
	}

	if err := s.addCumulativeBlock(ctx, trip, target, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

// categoryBreakdown slices the daily budget across the trip's categories by
// their configured percentages and nets today's spending against each slice.
func (s *statisticsService) categoryBreakdown(ctx context.Context, tripID string, dailyBudget decimal.Decimal, spentByCategory map[string]decimal.Decimal) ([]domain.CategoryDailyStatistics, error) {
	categories, err := s.categoryRepo.ListCategoriesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for daily statistics: %w", err)
	}

	breakdown := make([]domain.CategoryDailyStatistics, len(categories))
	for i, category := range categories {
		categoryBudget := dailyBudget.Mul(category.BudgetPercentage).Div(hundred)
		spent := spentByCategory[category.CategoryID]
		breakdown[i] = domain.CategoryDailyStatistics{
			CategoryID:      category.CategoryID,
			Name:            category.Name,
			Color:           category.Color,
			Icon:            category.Icon,
			DailyBudget:     categoryBudget,
			TotalSpent:      spent,
			RemainingBudget: categoryBudget.Sub(spent),
		}
	}
	return breakdown, nil
}

// addCumulativeBlock fills the cumulative past-days fields. The block only
// applies when the target is after the trip start and a daily budget is
// configured; otherwise the pointers stay nil.
func (s *statisticsService) addCumulativeBlock(ctx context.Context, trip *domain.Trip, target time.Time, stats *domain.DailyBudgetStatistics) error {
	if !target.After(trip.StartDate) || !trip.DailyBudget.IsPositive() {
		return nil
	}

	pastEnd := target.AddDate(0, 0, -1)
	if pastEnd.After(trip.EndDate) {
		pastEnd = trip.EndDate
	}
	daysInPast := daysBetweenDates(trip.StartDate, pastEnd) + 1
	if daysInPast <= 0 {
		return nil
	}

	pastExpenses, err := s.expenseRepo.FindExpensesOverlappingRange(ctx, trip.TripID, trip.StartDate, pastEnd)
	if err != nil {
		return fmt.Errorf("failed to load expenses for cumulative statistics: %w", err)
	}

	spentPast := decimal.Zero
	for _, expense := range pastExpenses {
		overlap := overlapDays(expense, trip.StartDate, pastEnd)
		if overlap <= 0 {
			continue
		}
		spentPast = spentPast.Add(expense.DailyShare().Mul(decimal.NewFromInt(int64(overlap))))
	}

	budgetPast := trip.DailyBudget.Mul(decimal.NewFromInt(int64(daysInPast)))
	savingsPast := budgetPast.Sub(spentPast)

	stats.CumulativeBudgetPast = &budgetPast
	stats.CumulativeSpentPast = &spentPast
	stats.CumulativeSavingsPast = &savingsPast
	return nil
}

// overlapDays returns how many days of the expense's inclusive span fall
// inside [windowStart, windowEnd].
func overlapDays(expense domain.Expense, windowStart, windowEnd time.Time) int {
	spanStart := expense.StartDate
	spanEnd := expense.StartDate
	if expense.EndDate != nil {
		spanEnd = *expense.EndDate
	}
	if spanStart.Before(windowStart) {
		spanStart = windowStart
	}
	if spanEnd.After(windowEnd) {
		spanEnd = windowEnd
	}
	return daysBetweenDates(spanStart, spanEnd) + 1
}

// daysBetweenDates returns whole days from a to b, negative when b precedes a.
// Both values are midnight-normalized dates.
func daysBetweenDates(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func (s *statisticsService) GetTripStatistics(ctx context.Context, tripID string) (*domain.TripStatistics, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to find trip for statistics: %w", err)
	}

	expenses, err := s.expenseRepo.FindAllExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for statistics: %w", err)
	}
	categories, err := s.categoryRepo.ListCategoriesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for statistics: %w", err)
	}

	totalSpent := decimal.Zero
	spentByCategory := make(map[string]decimal.Decimal)
	countByCategory := make(map[string]int)
	spentByDate := make(map[time.Time]decimal.Decimal)
	for _, expense := range expenses {
		totalSpent = totalSpent.Add(expense.AmountInTripCurrency)
		spentByCategory[expense.CategoryID] = spentByCategory[expense.CategoryID].Add(expense.AmountInTripCurrency)
		countByCategory[expense.CategoryID]++
		day := truncateToDay(expense.StartDate)
		spentByDate[day] = spentByDate[day].Add(expense.AmountInTripCurrency)
	}

	percentageUsed := decimal.Zero
	if trip.TotalBudget.IsPositive() {
		percentageUsed = totalSpent.Div(trip.TotalBudget).Mul(hundred)
		if percentageUsed.GreaterThan(hundred) {
			percentageUsed = hundred
		}
	}

	byCategory := make([]domain.CategorySpending, len(categories))
	for i, category := range categories {
		spent := spentByCategory[category.CategoryID]
		share := decimal.Zero
		if totalSpent.IsPositive() {
			share = spent.Div(totalSpent).Mul(hundred)
		}
		byCategory[i] = domain.CategorySpending{
			CategoryID: category.CategoryID,
			Name:       category.Name,
			Color:      category.Color,
			TotalSpent: spent,
			Percentage: share,
			Count:      countByCategory[category.CategoryID],
		}
	}

	byDate := make([]domain.DateSpending, 0, len(spentByDate))
	for day, spent := range spentByDate {
		byDate = append(byDate, domain.DateSpending{Date: day, TotalSpent: spent})
	}
	sort.Slice(byDate, func(i, j int) bool { return byDate[i].Date.Before(byDate[j].Date) })

	averageDaily := decimal.Zero
	if days := trip.LengthDays(); days > 0 {
		averageDaily = totalSpent.Div(decimal.NewFromInt(int64(days)))
	}

	return &domain.TripStatistics{
		TripID:          tripID,
		TotalExpenses:   len(expenses),
		TotalSpent:      totalSpent,
		TotalBudget:     trip.TotalBudget,
		RemainingBudget: trip.TotalBudget.Sub(totalSpent),
		PercentageUsed:  percentageUsed,
		ByCategory:      byCategory,
		ByDate:          byDate,
		AverageDaily:    averageDaily,
	}, nil
}
