package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CategoryRepo:      newPgxCategoryRepository(pool),
		CategoryGroupRepo: newPgxCategoryGroupRepository(pool),
		TransactionRepo:   newPgxTransactionRepository(pool),
		FundRepo:          newPgxFundRepository(pool),
		BudgetRepo:        newPgxBudgetRepository(pool),
		KeywordRepo:       newPgxKeywordRepository(pool),
	}
}
