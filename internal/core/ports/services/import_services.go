package services

import (
	"context"
	"io"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

// CategorizerSvcFacade maps merchants to categories via the persistent
// keyword table.
type CategorizerSvcFacade interface {
	// Categorize returns the category of the first keyword (in stored order)
	// that is a substring of the uppercased merchant; ok is false when
	// nothing matched.
	Categorize(ctx context.Context, merchant string) (category string, ok bool, err error)

	// AddKeyword upserts a keyword mapping (case-normalized to uppercase) and
	// durably persists the table before returning.
	AddKeyword(ctx context.Context, keyword, category string) error

	// ListKeywords returns the table in stored order.
	ListKeywords(ctx context.Context) ([]domain.KeywordMapping, error)

	// SeedDefaults installs the built-in keyword set when the table is empty.
	SeedDefaults(ctx context.Context) error
}

// ImportSvcFacade is the CSV ingestion orchestrator.
type ImportSvcFacade interface {
	// ImportCSV streams a statement file into the ledger. The whole file
	// commits as one atomic unit; rows with unparseable amount or date are
	// skipped without aborting the batch.
	ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
}
