package repositories

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
)

// KeywordRepositoryFacade is the persistent merchant keyword table. Iteration
// order (Position) is insertion order and is semantically load-bearing for
// categorization: the first keyword whose value is a substring of the
// merchant wins. Every mutation is durable before the call returns; there is
// no separate unsaved state.
type KeywordRepositoryFacade interface {
	// ListKeywords returns all keyword mappings in stored order.
	ListKeywords(ctx context.Context) ([]domain.KeywordMapping, error)

	// UpsertKeyword inserts or overwrites one mapping. The keyword is already
	// uppercased by the caller. A new keyword is appended after all existing
	// positions; an existing keyword keeps its position.
	UpsertKeyword(ctx context.Context, keyword, category string) error

	// SaveKeywords bulk-inserts mappings preserving their positions. Used to
	// seed the built-in default table.
	SaveKeywords(ctx context.Context, mappings []domain.KeywordMapping) error
}
