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

type PgxKeywordRepository struct {
	BaseRepository
}

// newPgxKeywordRepository creates a new repository for the merchant keyword
// table.
func newPgxKeywordRepository(pool *pgxpool.Pool) portsrepo.KeywordRepositoryFacade {
	return &PgxKeywordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.KeywordRepositoryFacade = (*PgxKeywordRepository)(nil)

func (r *PgxKeywordRepository) ListKeywords(ctx context.Context) ([]domain.KeywordMapping, error) {
	query := `SELECT keyword, category_name, position FROM category_keywords ORDER BY position;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list keywords: %v", apperrors.ErrPersistence, err)
	}
	defer rows.Close()

	var ms []models.CategoryKeyword
	for rows.Next() {
		var m models.CategoryKeyword
		if err := rows.Scan(&m.Keyword, &m.Category, &m.Position); err != nil {
			return nil, fmt.Errorf("%w: failed to scan keyword: %v", apperrors.ErrPersistence, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read keywords: %v", apperrors.ErrPersistence, err)
	}
	return mapping.ToDomainKeywordMappingSlice(ms), nil
}

// UpsertKeyword inserts a keyword after all existing positions, or retargets
// an existing keyword's category in place.
func (r *PgxKeywordRepository) UpsertKeyword(ctx context.Context, keyword, category string) error {
	query := `
		INSERT INTO category_keywords (keyword, category_name, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), -1) + 1 FROM category_keywords))
		ON CONFLICT (keyword)
		DO UPDATE SET category_name = EXCLUDED.category_name;
	`
	if _, err := r.Pool.Exec(ctx, query, keyword, category); err != nil {
		return fmt.Errorf("%w: failed to upsert keyword %q: %v", apperrors.ErrPersistence, keyword, err)
	}
	return nil
}

func (r *PgxKeywordRepository) SaveKeywords(ctx context.Context, mappings []domain.KeywordMapping) error {
	if len(mappings) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO category_keywords (keyword, category_name, position)
		VALUES ($1, $2, $3)
		ON CONFLICT (keyword) DO NOTHING;
	`
	for _, m := range mappings {
		batch.Queue(query, m.Keyword, m.Category, m.Position)
	}
	results := tx.SendBatch(ctx, batch)
	for range mappings {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("%w: failed to save keywords: %v", apperrors.ErrPersistence, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("%w: failed to close keyword batch: %v", apperrors.ErrPersistence, err)
	}
	return r.Commit(ctx, tx)
}
