package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fund is a named savings goal bound 1:1 to a Category of type fund sharing its
// name. CurrentBalance is derived: it must always equal the net of
// contribution-class minus withdrawal-class transactions on the bound category.
type Fund struct {
	FundID              string          `json:"fundID"` // Primary Key (UUID)
	Name                string          `json:"name"`   // Unique, mirrors the bound Category name
	Goal                decimal.Decimal `json:"goal"`
	GoalDate            *time.Time      `json:"goalDate"`
	CurrentBalance      decimal.Decimal `json:"currentBalance"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	AuditFields
}

// RecommendedContribution returns the monthly amount needed to reach the goal
// by the goal date, or zero when no goal/date is set or the date has passed.
func (f Fund) RecommendedContribution(now time.Time) decimal.Decimal {
	if f.Goal.IsZero() || f.GoalDate == nil {
		return decimal.Zero
	}
	if !f.GoalDate.After(now) {
		return decimal.Zero
	}
	months := (f.GoalDate.Year()-now.Year())*12 + int(f.GoalDate.Month()) - int(now.Month())
	if months <= 0 {
		months = 1
	}
	remaining := f.Goal.Sub(f.CurrentBalance)
	if remaining.Sign() <= 0 {
		return decimal.Zero
	}
	return remaining.DivRound(decimal.NewFromInt(int64(months)), 2)
}

// Progress returns the percentage of the goal reached, zero when no goal set.
func (f Fund) Progress() decimal.Decimal {
	if f.Goal.Sign() <= 0 {
		return decimal.Zero
	}
	return f.CurrentBalance.Div(f.Goal).Mul(decimal.NewFromInt(100)).Round(2)
}
