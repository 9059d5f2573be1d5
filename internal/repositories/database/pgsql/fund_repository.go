package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	"github.com/jmwalsh/budgetbook/internal/models"
	"github.com/jmwalsh/budgetbook/internal/utils/mapping"
)

const fundColumns = `fund_id, name, goal, goal_date, current_balance, monthly_contribution, created_at, last_updated_at`

type PgxFundRepository struct {
	BaseRepository
}

// newPgxFundRepository creates a new repository for fund data.
func newPgxFundRepository(pool *pgxpool.Pool) portsrepo.FundRepositoryFacade {
	return &PgxFundRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FundRepositoryFacade = (*PgxFundRepository)(nil)

func scanFund(row pgx.Row) (*models.Fund, error) {
	var m models.Fund
	err := row.Scan(
		&m.FundID, &m.Name, &m.Goal, &m.GoalDate,
		&m.CurrentBalance, &m.MonthlyContribution, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds WHERE fund_id = $1;`
	m, err := scanFund(r.Pool.QueryRow(ctx, query, fundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, fundID)
		}
		return nil, fmt.Errorf("%w: failed to find fund: %v", apperrors.ErrPersistence, err)
	}
	d := mapping.ToDomainFund(*m)
	return &d, nil
}

func (r *PgxFundRepository) FindFundByName(ctx context.Context, name string) (*domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds WHERE name = $1;`
	m, err := scanFund(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fund %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: failed to find fund: %v", apperrors.ErrPersistence, err)
	}
	d := mapping.ToDomainFund(*m)
	return &d, nil
}

func (r *PgxFundRepository) ListFunds(ctx context.Context) ([]domain.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM funds ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list funds: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	var ms []models.Fund
	for rows.Next() {
		m, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan fund: %v", apperrors.ErrPersistence, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read funds: %v", apperrors.ErrPersistence, err)
	}
	return mapping.ToDomainFundSlice(ms), nil
}

func (r *PgxFundRepository) SaveFund(ctx context.Context, fund domain.Fund) error {
	m := mapping.ToModelFund(fund)
	query := `
		INSERT INTO funds (` + fundColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FundID, m.Name, m.Goal, m.GoalDate,
		m.CurrentBalance, m.MonthlyContribution, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fund %q already exists", apperrors.ErrDuplicate, fund.Name)
		}
		return fmt.Errorf("%w: failed to insert fund: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// UpdateFund writes everything except current_balance, which only moves
// together with the ledger.
func (r *PgxFundRepository) UpdateFund(ctx context.Context, fund domain.Fund) error {
	m := mapping.ToModelFund(fund)
	query := `
		UPDATE funds
		SET name = $2, goal = $3, goal_date = $4, monthly_contribution = $5, last_updated_at = $6
		WHERE fund_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.FundID, m.Name, m.Goal, m.GoalDate, m.MonthlyContribution, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: fund %q already exists", apperrors.ErrDuplicate, fund.Name)
		}
		return fmt.Errorf("%w: failed to update fund: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, fund.FundID)
	}
	return nil
}

func (r *PgxFundRepository) DeleteFund(ctx context.Context, fundID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM funds WHERE fund_id = $1;`, fundID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete fund: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, fundID)
	}
	return nil
}

// ReplaceBalances overwrites every listed fund's balance in one transaction,
// locking rows in a stable order.
func (r *PgxFundRepository) ReplaceBalances(ctx context.Context, balances map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()
	for _, fundID := range sortedBalanceKeys(balances) {
		if _, err := tx.Exec(ctx,
			`UPDATE funds SET current_balance = $2, last_updated_at = $3 WHERE fund_id = $1;`,
			fundID, balances[fundID], now,
		); err != nil {
			return fmt.Errorf("%w: failed to replace balance of fund %s: %v", apperrors.ErrPersistence, fundID, err)
		}
	}
	return r.Commit(ctx, tx)
}

func sortedBalanceKeys(balances map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(balances))
	for k := range balances {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
