package dto

import "github.com/shopspring/decimal"

// BudgetItem is one category's budgeted amount for a month.
type BudgetItem struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryType string          `json:"categoryType"`
	Amount       decimal.Decimal `json:"amount"`
	IsDefault    bool            `json:"isDefault"` // true when falling back to the category default
}

// UpdateBudgetRequest maps category IDs to budgeted amounts for one month.
type UpdateBudgetRequest struct {
	Amounts map[string]decimal.Decimal `json:"amounts" binding:"required"`
}

// BudgetComparisonRow is one category's budget-vs-actual for a month.
type BudgetComparisonRow struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	CategoryType string          `json:"categoryType"`
	Budget       decimal.Decimal `json:"budget"`
	Actual       decimal.Decimal `json:"actual"`
	Difference   decimal.Decimal `json:"difference"`
	Status       string          `json:"status"` // "under" or "over"
}

// MonthlySummaryResponse aggregates one month of ledger activity.
type MonthlySummaryResponse struct {
	YearMonth       string             `json:"yearMonth"`
	TotalIncome     decimal.Decimal    `json:"totalIncome"`
	TotalDeductions decimal.Decimal    `json:"totalDeductions"`
	TotalExpenses   decimal.Decimal    `json:"totalExpenses"`
	TotalSavings    decimal.Decimal    `json:"totalSavings"`
	Net             decimal.Decimal    `json:"net"`
	Funds           []FundProgressItem `json:"funds"`
}

// FundProgressItem is one fund's state inside a summary.
type FundProgressItem struct {
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	Goal     decimal.Decimal `json:"goal"`
	Progress decimal.Decimal `json:"progress"`
	GoalDate *string         `json:"goalDate,omitempty"`
}
