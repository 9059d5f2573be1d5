package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fund represents a row of the funds table. current_balance is derived from
// the ledger and only ever written together with it.
type Fund struct {
	FundID              string          `db:"fund_id"`
	Name                string          `db:"name"`
	Goal                decimal.Decimal `db:"goal"`
	GoalDate            *time.Time      `db:"goal_date"` // Nullable
	CurrentBalance      decimal.Decimal `db:"current_balance"`
	MonthlyContribution decimal.Decimal `db:"monthly_contribution"`
	AuditFields
}
