package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	"github.com/jmwalsh/budgetbook/internal/models"
	"github.com/jmwalsh/budgetbook/internal/utils/mapping"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for monthly budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) ListBudgetsByMonth(ctx context.Context, yearMonth string) ([]domain.Budget, error) {
	query := `
		SELECT budget_id, category_id, year_month, amount, created_at, last_updated_at
		FROM budgets
		WHERE year_month = $1;
	`
	rows, err := r.Pool.Query(ctx, query, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list budgets: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	var ms []models.Budget
	for rows.Next() {
		var m models.Budget
		if err := rows.Scan(&m.BudgetID, &m.CategoryID, &m.YearMonth, &m.Amount, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan budget: %v", apperrors.ErrPersistence, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read budgets: %v", apperrors.ErrPersistence, err)
	}
	return mapping.ToDomainBudgetSlice(ms), nil
}

func (r *PgxBudgetRepository) UpsertBudgets(ctx context.Context, budgets []domain.Budget) error {
	if len(budgets) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO budgets (budget_id, category_id, year_month, amount, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category_id, year_month)
		DO UPDATE SET amount = EXCLUDED.amount, last_updated_at = EXCLUDED.last_updated_at;
	`
	for _, b := range budgets {
		m := mapping.ToModelBudget(b)
		batch.Queue(query, m.BudgetID, m.CategoryID, m.YearMonth, m.Amount, m.CreatedAt, m.LastUpdatedAt)
	}
	results := tx.SendBatch(ctx, batch)
	for range budgets {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("%w: failed to upsert budgets: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("%w: failed to close budget batch: %v", apperrors.ErrPersistence, err)
	}
	return r.Commit(ctx, tx)
}
