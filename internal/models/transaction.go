package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the transactions table. Amount is stored
// non-negative; transaction_type carries the direction.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"transaction_type"`
	CategoryID    string          `db:"category_id"`
	Date          time.Time       `db:"transaction_date"`
	Merchant      string          `db:"merchant"`
	Description   string          `db:"description"`
	Notes         string          `db:"notes"`
	AuditFields
}
