package dto

import (
	"time"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for creating a transaction.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=income deduction expense fund_contribution fund_withdrawal"`
	CategoryID  string          `json:"categoryID" binding:"required"`
	Date        string          `json:"date" binding:"required"` // "YYYY-MM-DD"
	Merchant    string          `json:"merchant"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}

// UpdateTransactionRequest defines partial updates to a transaction.
type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Type        *string          `json:"type" binding:"omitempty,oneof=income deduction expense fund_contribution fund_withdrawal"`
	CategoryID  *string          `json:"categoryID"`
	Date        *string          `json:"date"`
	Merchant    *string          `json:"merchant"`
	Description *string          `json:"description"`
	Notes       *string          `json:"notes"`
}

// ListTransactionsParams narrows transaction listing. Zero values are ignored.
type ListTransactionsParams struct {
	YearMonth  string `form:"month"` // "YYYY-MM"
	Type       string `form:"type"`
	CategoryID string `form:"categoryID"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CategoryID    string          `json:"categoryID"`
	Date          string          `json:"date"`
	Merchant      string          `json:"merchant"`
	Description   string          `json:"description"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		CategoryID:    t.CategoryID,
		Date:          t.Date.Format("2006-01-02"),
		Merchant:      t.Merchant,
		Description:   t.Description,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
