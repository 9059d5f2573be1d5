package services

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

// TransactionSvcFacade is the ledger service: every mutation keeps the bound
// fund balance in sync within the same atomic unit, and a withdrawal that
// would drive a fund negative is rejected with apperrors.ErrConflict before
// any state changes.
type TransactionSvcFacade interface {
	// CreateTransaction validates and persists a transaction, applying its
	// fund effect if the category is fund-bound.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// UpdateTransaction applies partial updates, reversing the prior fund
	// effect and applying the new one (undo-then-apply) atomically.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its fund effect.
	DeleteTransaction(ctx context.Context, transactionID string) error
}
