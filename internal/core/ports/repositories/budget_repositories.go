package repositories

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
)

// BudgetRepositoryFacade defines operations for monthly budget data
type BudgetRepositoryFacade interface {
	// ListBudgetsByMonth retrieves all budgets for one "YYYY-MM" month.
	ListBudgetsByMonth(ctx context.Context, yearMonth string) ([]domain.Budget, error)

	// UpsertBudgets inserts or overwrites budgets, keyed by (category, month),
	// within one database transaction.
	UpsertBudgets(ctx context.Context, budgets []domain.Budget) error
}
