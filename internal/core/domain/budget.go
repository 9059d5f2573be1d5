package domain

import "github.com/shopspring/decimal"

// Budget is the planned amount for one category in one calendar month.
type Budget struct {
	BudgetID   string          `json:"budgetID"`   // Primary Key (UUID)
	CategoryID string          `json:"categoryID"` // FK -> categories.category_id
	YearMonth  string          `json:"yearMonth"`  // "YYYY-MM"
	Amount     decimal.Decimal `json:"amount"`
	AuditFields
}

// KeywordMapping is one entry of the merchant keyword table. Keywords are
// stored uppercase; Position preserves insertion order, which is load-bearing
// for categorization (first match wins).
type KeywordMapping struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Position int    `json:"position"`
}
