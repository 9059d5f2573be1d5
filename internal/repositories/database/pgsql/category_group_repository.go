package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	"github.com/jmwalsh/budgetbook/internal/models"
	"github.com/jmwalsh/budgetbook/internal/utils/mapping"
)

const groupColumns = `group_id, name, group_type, sort_order, created_at, last_updated_at`

type PgxCategoryGroupRepository struct {
	BaseRepository
}

// newPgxCategoryGroupRepository creates a new repository for category group data.
func newPgxCategoryGroupRepository(pool *pgxpool.Pool) portsrepo.CategoryGroupRepositoryFacade {
	return &PgxCategoryGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryGroupRepositoryFacade = (*PgxCategoryGroupRepository)(nil)

func scanGroup(row pgx.Row) (*models.CategoryGroup, error) {
	var m models.CategoryGroup
	err := row.Scan(&m.GroupID, &m.Name, &m.Type, &m.SortOrder, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxCategoryGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.CategoryGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM category_groups WHERE group_id = $1;`
	m, err := scanGroup(r.Pool.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: group %s", apperrors.ErrNotFound, groupID)
		}
		return nil, fmt.Errorf("%w: failed to find group: %v", apperrors.ErrPersistence, err)
	}
	d := mapping.ToDomainCategoryGroup(*m)
	return &d, nil
}

func (r *PgxCategoryGroupRepository) FindGroupByName(ctx context.Context, name string, groupType domain.CategoryType) (*domain.CategoryGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM category_groups WHERE name = $1 AND group_type = $2;`
	m, err := scanGroup(r.Pool.QueryRow(ctx, query, name, string(groupType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: group %q", apperrors.ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: failed to find group: %v", apperrors.ErrPersistence, err)
	}
	d := mapping.ToDomainCategoryGroup(*m)
	return &d, nil
}

func (r *PgxCategoryGroupRepository) ListGroups(ctx context.Context) ([]domain.CategoryGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM category_groups ORDER BY sort_order, group_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list groups: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	var ms []models.CategoryGroup
	for rows.Next() {
		m, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan group: %v", apperrors.ErrPersistence, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read groups: %v", apperrors.ErrPersistence, err)
	}
	return mapping.ToDomainCategoryGroupSlice(ms), nil
}

func (r *PgxCategoryGroupRepository) SaveGroup(ctx context.Context, group domain.CategoryGroup) error {
	m := mapping.ToModelCategoryGroup(group)
	query := `
		INSERT INTO category_groups (` + groupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query, m.GroupID, m.Name, m.Type, m.SortOrder, m.CreatedAt, m.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group %q already exists", apperrors.ErrDuplicate, group.Name)
		}
		return fmt.Errorf("%w: failed to insert group: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

func (r *PgxCategoryGroupRepository) UpdateGroup(ctx context.Context, group domain.CategoryGroup) error {
	m := mapping.ToModelCategoryGroup(group)
	query := `
		UPDATE category_groups
		SET name = $2, sort_order = $3, last_updated_at = $4
		WHERE group_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.GroupID, m.Name, m.SortOrder, m.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: group %q already exists", apperrors.ErrDuplicate, group.Name)
		}
		return fmt.Errorf("%w: failed to update group: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: group %s", apperrors.ErrNotFound, group.GroupID)
	}
	return nil
}

// DeleteGroup removes a group; categories referencing it fall back to NULL via
// the foreign key's ON DELETE SET NULL.
func (r *PgxCategoryGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM category_groups WHERE group_id = $1;`, groupID)
	if err != nil {
		return fmt.Errorf("%w: failed to delete group: %v", apperrors.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: group %s", apperrors.ErrNotFound, groupID)
	}
	return nil
}

func (r *PgxCategoryGroupRepository) ReorderGroups(ctx context.Context, orderedIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()
	for i, id := range orderedIDs {
		if _, err := tx.Exec(ctx,
			`UPDATE category_groups SET sort_order = $1, last_updated_at = $2 WHERE group_id = $3;`,
			i, now, id,
		); err != nil {
			return fmt.Errorf("%w: failed to reorder group %s: %v", apperrors.ErrPersistence, id, err)
		}
	}
	return r.Commit(ctx, tx)
}
