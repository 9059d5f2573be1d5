package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

// reportingService produces read-only aggregations over the ledger.
type reportingService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	fundRepo     portsrepo.FundRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	fundRepo portsrepo.FundRepositoryFacade,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		fundRepo:     fundRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) MonthlySummary(ctx context.Context, yearMonth string) (*dto.MonthlySummaryResponse, error) {
	if err := validateYearMonth(yearMonth); err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionListFilter{YearMonth: &yearMonth})
	if err != nil {
		return nil, err
	}
	categoryTypes, err := s.categoryTypesByID(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.MonthlySummaryResponse{YearMonth: yearMonth}
	for _, t := range txns {
		onFund := categoryTypes[t.CategoryID] == domain.CategoryFund
		switch {
		case t.Type == domain.TxnIncome:
			resp.TotalIncome = resp.TotalIncome.Add(t.Amount)
		case t.Type == domain.TxnDeduction:
			resp.TotalDeductions = resp.TotalDeductions.Add(t.Amount)
		case t.Type == domain.TxnExpense && !onFund:
			resp.TotalExpenses = resp.TotalExpenses.Add(t.Amount)
		case t.Type == domain.TxnFundContribution || (t.Type == domain.TxnExpense && onFund):
			resp.TotalSavings = resp.TotalSavings.Add(t.Amount)
		}
	}
	resp.Net = resp.TotalIncome.Sub(resp.TotalDeductions).Sub(resp.TotalExpenses).Sub(resp.TotalSavings)

	funds, err := s.fundRepo.ListFunds(ctx)
	if err != nil {
		return nil, err
	}
	resp.Funds = make([]dto.FundProgressItem, 0, len(funds))
	for _, f := range funds {
		item := dto.FundProgressItem{
			Name:     f.Name,
			Balance:  f.CurrentBalance,
			Goal:     f.Goal,
			Progress: f.Progress(),
		}
		if f.GoalDate != nil {
			d := f.GoalDate.Format("2006-01-02")
			item.GoalDate = &d
		}
		resp.Funds = append(resp.Funds, item)
	}
	return resp, nil
}

func (s *reportingService) ExportCSV(ctx context.Context, w io.Writer) error {
	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionListFilter{})
	if err != nil {
		return err
	}
	categoryNames, err := s.categoryNamesByID(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Type", "Category", "Description", "Merchant", "Amount", "Notes"}); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, t := range txns {
		record := []string{
			t.Date.Format(time.DateOnly),
			string(t.Type),
			categoryNames[t.CategoryID],
			t.Description,
			t.Merchant,
			t.Amount.String(),
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportingService) categoryTypesByID(ctx context.Context) (map[string]domain.CategoryType, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	types := make(map[string]domain.CategoryType, len(categories))
	for _, c := range categories {
		types[c.CategoryID] = c.Type
	}
	return types, nil
}

func (s *reportingService) categoryNamesByID(ctx context.Context) (map[string]string, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}
	return names, nil
}
