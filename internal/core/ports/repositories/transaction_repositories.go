package repositories

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundBalanceChange is a signed delta to apply to one fund's derived balance
// as part of the same atomic unit that mutates the ledger. When
// EnforceNonNegative is set, an application that would leave the balance
// negative fails the whole unit with apperrors.ErrConflict.
type FundBalanceChange struct {
	FundID             string
	Delta              decimal.Decimal
	EnforceNonNegative bool
}

// TransactionListFilter narrows ListTransactions. Nil fields are ignored.
type TransactionListFilter struct {
	YearMonth  *string // "YYYY-MM"
	Type       *domain.TransactionType
	CategoryID *string
}

// TransactionReader defines read operations for ledger data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter TransactionListFilter) ([]domain.Transaction, error)

	// SumAmountByCategoryAndTypes aggregates amounts of all transactions on a
	// category having one of the given types. Used by fund reconciliation.
	SumAmountByCategoryAndTypes(ctx context.Context, categoryID string, types []domain.TransactionType) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for ledger data. Every method
// that carries fund balance changes applies them in the same database
// transaction as the ledger mutation, so no reader observes the two out of
// sync.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and applies the fund deltas.
	SaveTransaction(ctx context.Context, txn domain.Transaction, changes []FundBalanceChange) error

	// SaveTransactions persists a whole import batch atomically: either every
	// transaction and fund delta is durable or none is.
	SaveTransactions(ctx context.Context, txns []domain.Transaction, changes []FundBalanceChange) error

	// UpdateTransaction rewrites a transaction, first applying reverse (the
	// undo of the prior fund effect), then apply (the new effect), in that
	// order, inside one database transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, reverse, apply []FundBalanceChange) error

	// DeleteTransaction removes a transaction and applies the reverse of its
	// fund effect.
	DeleteTransaction(ctx context.Context, transactionID string, reverse []FundBalanceChange) error

	// DeleteTransactionsByCategory removes every transaction on a category.
	// Used when a fund (and its bound category) is deleted.
	DeleteTransactionsByCategory(ctx context.Context, categoryID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
