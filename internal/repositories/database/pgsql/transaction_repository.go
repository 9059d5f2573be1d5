package pgsql

import (
	"context"
	"errors"
	"fmt"
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

const transactionColumns = `transaction_id, amount, transaction_type, category_id, transaction_date, merchant, description, notes, created_at, last_updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.Amount, &m.Type, &m.CategoryID, &m.Date,
		&m.Merchant, &m.Description, &m.Notes, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("%w: failed to find transaction: %v", apperrors.ErrPersistence, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var (
		clauses []string
		args    []any
	)
	if filter.YearMonth != nil {
		args = append(args, *filter.YearMonth)
		clauses = append(clauses, fmt.Sprintf(`to_char(transaction_date, 'YYYY-MM') = $%d`, len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		clauses = append(clauses, fmt.Sprintf(`transaction_type = $%d`, len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf(`category_id = $%d`, len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list transactions: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan transaction: %v", apperrors.ErrPersistence, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read transactions: %v", apperrors.ErrPersistence, err)
	}
	return mapping.ToDomainTransactionSlice(ms), nil
}

func (r *PgxTransactionRepository) SumAmountByCategoryAndTypes(ctx context.Context, categoryID string, types []domain.TransactionType) (decimal.Decimal, error) {
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE category_id = $1 AND transaction_type = ANY($2);
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, categoryID, typeNames).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to sum transactions: %v", apperrors.ErrPersistence, err)
	}
	return sum, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes []portsrepo.FundBalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return err
	}
	if err := applyFundChanges(ctx, tx, changes); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction, changes []portsrepo.FundBalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID, m.Amount, m.Type, m.CategoryID, m.Date,
			m.Merchant, m.Description, m.Notes, m.CreatedAt, m.LastUpdatedAt,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("%w: failed to insert transaction batch: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("%w: failed to close transaction batch: %v", apperrors.ErrPersistence, err)
	}

	if err := applyFundChanges(ctx, tx, changes); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, reverse, apply []portsrepo.FundBalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET amount = $2, transaction_type = $3, category_id = $4, transaction_date = $5,
		    merchant = $6, description = $7, notes = $8, last_updated_at = $9
		WHERE transaction_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID, m.Amount, m.Type, m.CategoryID, m.Date,
		m.Merchant, m.Description, m.Notes, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to update transaction: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}

	// Undo the old fund effect first so the non-negative check sees the
	// post-reversal balance, not the stale one.
	if err := applyFundChanges(ctx, tx, reverse); err != nil {
		return err
	}
	if err := applyFundChanges(ctx, tx, apply); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, reverse []portsrepo.FundBalanceChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete transaction: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}

	if err := applyFundChanges(ctx, tx, reverse); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) DeleteTransactionsByCategory(ctx context.Context, categoryID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE category_id = $1;`, categoryID); err != nil {
		return fmt.Errorf("%w: failed to delete transactions for category %s: %v", apperrors.ErrPersistence, categoryID, err)
	}
	return nil
}

func insertTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID, m.Amount, m.Type, m.CategoryID, m.Date,
		m.Merchant, m.Description, m.Notes, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert transaction %s: %v", apperrors.ErrPersistence, txn.TransactionID, err)
	}
	return nil
}

// applyFundChanges locks each fund row and applies its delta. A change with
// EnforceNonNegative that would leave the balance negative fails the whole
// transaction with apperrors.ErrConflict.
func applyFundChanges(ctx context.Context, tx pgx.Tx, changes []portsrepo.FundBalanceChange) error {
	now := time.Now()
	for _, change := range changes {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT current_balance FROM funds WHERE fund_id = $1 FOR UPDATE;`,
			change.FundID,
		).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: fund %s", apperrors.ErrNotFound, change.FundID)
			}
			return fmt.Errorf("%w: failed to lock fund %s: %v", apperrors.ErrPersistence, change.FundID, err)
		}

		next := balance.Add(change.Delta)
		if change.EnforceNonNegative && next.Sign() < 0 {
			return fmt.Errorf("%w: insufficient fund balance", apperrors.ErrConflict)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE funds SET current_balance = $2, last_updated_at = $3 WHERE fund_id = $1;`,
			change.FundID, next, now,
		); err != nil {
			return fmt.Errorf("%w: failed to update fund %s balance: %v", apperrors.ErrPersistence, change.FundID, err)
		}
	}
	return nil
}
