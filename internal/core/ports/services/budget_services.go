package services

import (
	"context"
	"io"

	"github.com/jmwalsh/budgetbook/internal/dto"
)

// BudgetSvcFacade manages monthly budgets and budget-vs-actual comparison.
type BudgetSvcFacade interface {
	// GetMonthBudget returns every category's budgeted amount for a month,
	// falling back to category defaults where no explicit budget exists.
	GetMonthBudget(ctx context.Context, yearMonth string) ([]dto.BudgetItem, error)

	// UpdateMonthBudget overwrites budgeted amounts for a month.
	UpdateMonthBudget(ctx context.Context, yearMonth string, req dto.UpdateBudgetRequest) error

	// Comparison returns budget-vs-actual rows for a month.
	Comparison(ctx context.Context, yearMonth string) ([]dto.BudgetComparisonRow, error)
}

// ReportingSvcFacade produces read-only aggregations over the ledger.
type ReportingSvcFacade interface {
	// MonthlySummary aggregates income, deductions, expenses and savings for
	// one month, with per-fund progress.
	MonthlySummary(ctx context.Context, yearMonth string) (*dto.MonthlySummaryResponse, error)

	// ExportCSV writes all transactions as CSV.
	ExportCSV(ctx context.Context, w io.Writer) error
}
