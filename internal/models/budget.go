package models

import "github.com/shopspring/decimal"

// Budget represents a row of the budgets table, unique per (category, month).
type Budget struct {
	BudgetID   string          `db:"budget_id"`
	CategoryID string          `db:"category_id"`
	YearMonth  string          `db:"year_month"` // "YYYY-MM"
	Amount     decimal.Decimal `db:"amount"`
	AuditFields
}

// CategoryKeyword represents a row of the category_keywords table. Position
// is the insertion order and drives first-match-wins categorization.
type CategoryKeyword struct {
	Keyword  string `db:"keyword"`
	Category string `db:"category_name"`
	Position int    `db:"position"`
}
