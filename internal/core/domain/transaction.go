package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry. Amounts are stored non-negative;
// the type carries the direction.
type TransactionType string

const (
	TxnIncome           TransactionType = "income"
	TxnDeduction        TransactionType = "deduction"
	TxnExpense          TransactionType = "expense"
	TxnFundContribution TransactionType = "fund_contribution"
	TxnFundWithdrawal   TransactionType = "fund_withdrawal"
)

// ValidTransactionType reports whether t is one of the known transaction types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TxnIncome, TxnDeduction, TxnExpense, TxnFundContribution, TxnFundWithdrawal:
		return true
	}
	return false
}

// Transaction is a single persisted ledger entry.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	Amount        decimal.Decimal `json:"amount"`        // Non-negative
	Type          TransactionType `json:"type"`
	CategoryID    string          `json:"categoryID"` // FK -> categories.category_id
	Date          time.Time       `json:"date"`
	Merchant      string          `json:"merchant"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	AuditFields
}

// FundEffect returns the signed change this transaction applies to the balance
// of a fund bound to its category: positive for contribution-class entries
// (an expense posted to a fund category, or an explicit fund contribution),
// negative for withdrawals, zero otherwise. categoryType is the type of the
// transaction's category.
func (t Transaction) FundEffect(categoryType CategoryType) decimal.Decimal {
	if categoryType != CategoryFund {
		return decimal.Zero
	}
	switch t.Type {
	case TxnExpense, TxnFundContribution:
		return t.Amount
	case TxnFundWithdrawal:
		return t.Amount.Neg()
	}
	return decimal.Zero
}
