package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryDailyStatistics is one category's slice of a day's budget.
type CategoryDailyStatistics struct {
	CategoryID      string          `json:"categoryID"`
	Name            string          `json:"name"`
	Color           string          `json:"color"`
	Icon            string          `json:"icon,omitempty"`
	DailyBudget     decimal.Decimal `json:"dailyBudget"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	RemainingBudget decimal.Decimal `json:"remainingBudget"`
}

// DailyBudgetStatistics is the result of the daily budget computation for a
// single trip and target date. The three Cumulative* fields are nil when the
// cumulative block is not applicable (target date on or before the trip start,
// or no daily budget configured) - that is distinct from zero savings.
type DailyBudgetStatistics struct {
	TripID              string                    `json:"tripID"`
	Date                time.Time                 `json:"date"`
	DailyBudget         decimal.Decimal           `json:"dailyBudget"`
	DaysIntoTrip        int                       `json:"daysIntoTrip"`
	TotalDays           int                       `json:"totalDays"`
	TotalSpentToday     decimal.Decimal           `json:"totalSpentToday"`
	RemainingToday      decimal.Decimal           `json:"remainingToday"`
	PercentageUsedToday decimal.Decimal           `json:"percentageUsedToday"`
	ExpenseCountToday   int                       `json:"expenseCountToday"`
	IsOverBudget        bool                      `json:"isOverBudget"`
	ByCategoryToday     []CategoryDailyStatistics `json:"byCategoryToday"`

	CumulativeBudgetPast  *decimal.Decimal `json:"cumulativeBudgetPast,omitempty"`
	CumulativeSpentPast   *decimal.Decimal `json:"cumulativeSpentPast,omitempty"`
	CumulativeSavingsPast *decimal.Decimal `json:"cumulativeSavingsPast,omitempty"`
}

// CategorySpending is one category's share of a trip's overall spending.
type CategorySpending struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	Percentage decimal.Decimal `json:"percentage"`
	Count      int             `json:"count"`
}

// DateSpending is one calendar day's total spending, keyed by expense start date.
type DateSpending struct {
	Date       time.Time       `json:"date"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

// TripStatistics aggregates a trip's expenses against its total budget.
type TripStatistics struct {
	TripID          string             `json:"tripID"`
	TotalExpenses   int                `json:"totalExpenses"`
	TotalSpent      decimal.Decimal    `json:"totalSpent"`
	TotalBudget     decimal.Decimal    `json:"totalBudget"`
	RemainingBudget decimal.Decimal    `json:"remainingBudget"`
	PercentageUsed  decimal.Decimal    `json:"percentageUsed"`
	ByCategory      []CategorySpending `json:"byCategory"`
	ByDate          []DateSpending     `json:"byDate"`
	AverageDaily    decimal.Decimal    `json:"averageDailySpending"`
}
