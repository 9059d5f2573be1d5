package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
	"github.com/jmwalsh/budgetbook/internal/middleware"
	"github.com/jmwalsh/budgetbook/internal/statement"
)

// importerService turns raw statement files into persisted transactions. One
// file is one atomic batch: either every normalized row commits or none does.
type importerService struct {
	categorizer  portssvc.CategorizerSvcFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	fundRepo     portsrepo.FundRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	now          func() time.Time
}

// NewImporterService creates a new ImportService.
func NewImporterService(
	categorizer portssvc.CategorizerSvcFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	fundRepo portsrepo.FundRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) portssvc.ImportSvcFacade {
	return &importerService{
		categorizer:  categorizer,
		categoryRepo: categoryRepo,
		fundRepo:     fundRepo,
		txnRepo:      txnRepo,
		now:          time.Now,
	}
}

var _ portssvc.ImportSvcFacade = (*importerService)(nil)

func (s *importerService) ImportCSV(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reader, err := statement.NewReader(r)
	if err != nil {
		return nil, err
	}
	mapping := reader.Mapping()
	now := s.now()

	var (
		txns       []domain.Transaction
		fundDeltas = map[string]decimal.Decimal{}
		unresolved = map[string]struct{}{}
		skipped    int
	)
	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		parsed, err := statement.ParseRow(mapping, row, now)
		if err != nil {
			skipped++
			logger.Debug("skipping unparseable statement row", "line", row.Line, "error", err)
			continue
		}

		categoryName, err := s.resolveCategoryName(ctx, mapping, row, parsed, unresolved)
		if err != nil {
			return nil, err
		}
		category, err := s.categoryRepo.FindOrCreateCategory(ctx, categoryName, domain.CategoryExpense)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", categoryName, err)
		}

		txnType := domain.TxnExpense
		if parsed.Class == statement.ClassIncome {
			txnType = domain.TxnIncome
		}

		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			Amount:        parsed.Amount,
			Type:          txnType,
			CategoryID:    category.CategoryID,
			Date:          parsed.Date,
			Merchant:      parsed.Merchant,
			Description:   parsed.RawDescription,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		txns = append(txns, txn)

		if category.Type == domain.CategoryFund {
			fund, err := s.fundRepo.FindFundByName(ctx, category.Name)
			if err != nil {
				// A fund category without a fund record is a no-op, the same
				// tolerance the manual ledger path applies. Anything else
				// aborts the batch before it can commit without its deltas.
				if !errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("failed to find fund for category %q: %w", category.Name, err)
				}
			} else {
				fundDeltas[fund.FundID] = fundDeltas[fund.FundID].Add(txn.FundEffect(category.Type))
			}
		}
	}

	if len(txns) > 0 {
		changes := make([]portsrepo.FundBalanceChange, 0, len(fundDeltas))
		for fundID, delta := range fundDeltas {
			changes = append(changes, portsrepo.FundBalanceChange{FundID: fundID, Delta: delta})
		}
		if err := s.txnRepo.SaveTransactions(ctx, txns, changes); err != nil {
			return nil, fmt.Errorf("failed to persist import batch: %w", err)
		}
	}

	summary := &dto.ImportSummary{
		Created:             len(txns),
		UnresolvedMerchants: sortedKeys(unresolved),
	}
	logger.Info("statement import committed",
		"created", summary.Created,
		"skipped", skipped,
		"unresolved", len(summary.UnresolvedMerchants))
	return summary, nil
}

// resolveCategoryName picks the category for one row: an explicit category
// hint column wins, then the keyword table, then Uncategorized. Merchants the
// keyword table could not place are collected for the summary. A failing
// keyword-table read aborts the import rather than miscategorizing every row.
func (s *importerService) resolveCategoryName(ctx context.Context, m statement.SchemaMapping, row statement.RawRow, parsed statement.ParsedTransaction, unresolved map[string]struct{}) (string, error) {
	if hint := row.Field(m.CategoryHint); hint != "" {
		return hint, nil
	}
	name, ok, err := s.categorizer.Categorize(ctx, parsed.Merchant)
	if err != nil {
		return "", fmt.Errorf("failed to categorize merchant %q: %w", parsed.Merchant, err)
	}
	if ok {
		return name, nil
	}
	if merchant := strings.TrimSpace(parsed.Merchant); merchant != "" {
		unresolved[merchant] = struct{}{}
	}
	return domain.UncategorizedName, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
