package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	"github.com/jmwalsh/budgetbook/internal/models"
	"github.com/jmwalsh/budgetbook/internal/utils/mapping"
)

const categoryColumns = `category_id, name, category_type, group_id, default_budget, is_custom, sort_order, created_at, last_updated_at`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (*models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID, &m.Name, &m.Type, &m.GroupID, &m.DefaultBudget,
		&m.IsCustom, &m.SortOrder, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return nil, fmt.Errorf("%w: failed to find category: %v", apperrors.ErrPersistence, err)
	}
	d := mapping.ToDomainCategory(*m)
	return &d, nil
}

func (r *PgxCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1;`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: failed to find category: %v", apperrors.ErrPersistence, err)
	}
	d := mapping.ToDomainCategory(*m)
	return &d, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY sort_order, name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list categories: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	var ms []models.Category
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan category: %v", apperrors.ErrPersistence, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read categories: %v", apperrors.ErrPersistence, err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.Name, m.Type, m.GroupID, m.DefaultBudget,
		m.IsCustom, m.SortOrder, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("%w: failed to insert category: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// FindOrCreateCategory resolves a category by name, inserting it with the
// given type when missing. A concurrent insert of the same name is absorbed
// by retrying the lookup on unique violation.
func (r *PgxCategoryRepository) FindOrCreateCategory(ctx context.Context, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	existing, err := r.FindCategoryByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       name,
		Type:       categoryType,
		IsCustom:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := r.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return r.FindCategoryByName(ctx, name)
		}
		return nil, err
	}
	return &category, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $2, group_id = $3, default_budget = $4, sort_order = $5, last_updated_at = $6
		WHERE category_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.Name, m.GroupID, m.DefaultBudget, m.SortOrder, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("%w: failed to update category: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, category.CategoryID)
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete category: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return nil
}

func (r *PgxCategoryRepository) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()
	for i, id := range orderedIDs {
		if _, err := tx.Exec(ctx,
			`UPDATE categories SET sort_order = $1, last_updated_at = $2 WHERE category_id = $3;`,
			i, now, id,
		); err != nil {
			return fmt.Errorf("%w: failed to reorder category %s: %v", apperrors.ErrPersistence, id, err)
		}
	}
	return r.Commit(ctx, tx)
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
