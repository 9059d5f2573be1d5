package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

// budgetService resolves monthly budgets. A category without an explicit
// budget row for the month falls back to its default budget.
type budgetService struct {
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	now          func() time.Time
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		txnRepo:      txnRepo,
		now:          time.Now,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func validateYearMonth(yearMonth string) error {
	if _, err := time.Parse("2006-01", yearMonth); err != nil {
		return fmt.Errorf("%w: invalid month %q, expected YYYY-MM", apperrors.ErrValidation, yearMonth)
	}
	return nil
}

func (s *budgetService) GetMonthBudget(ctx context.Context, yearMonth string) ([]dto.BudgetItem, error) {
	if err := validateYearMonth(yearMonth); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.ListBudgetsByMonth(ctx, yearMonth)
	if err != nil {
		return nil, err
	}
	explicit := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		explicit[b.CategoryID] = b.Amount
	}

	items := make([]dto.BudgetItem, 0, len(categories))
	for _, c := range categories {
		amount, ok := explicit[c.CategoryID]
		if !ok {
			amount = c.DefaultBudget
		}
		items = append(items, dto.BudgetItem{
			CategoryID:   c.CategoryID,
			CategoryName: c.Name,
			CategoryType: string(c.Type),
			Amount:       amount,
			IsDefault:    !ok,
		})
	}
	return items, nil
}

func (s *budgetService) UpdateMonthBudget(ctx context.Context, yearMonth string, req dto.UpdateBudgetRequest) error {
	if err := validateYearMonth(yearMonth); err != nil {
		return err
	}
	now := s.now()
	budgets := make([]domain.Budget, 0, len(req.Amounts))
	for categoryID, amount := range req.Amounts {
		if amount.Sign() < 0 {
			return fmt.Errorf("%w: budget amount cannot be negative", apperrors.ErrValidation)
		}
		if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID); err != nil {
			return err
		}
		budgets = append(budgets, domain.Budget{
			BudgetID:   uuid.NewString(),
			CategoryID: categoryID,
			YearMonth:  yearMonth,
			Amount:     amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
	}
	return s.budgetRepo.UpsertBudgets(ctx, budgets)
}

// Comparison reports budget versus actual per category. Outflow categories
// (expense, fund, deduction) count the matching outflow transactions and are
// under budget when actual stays at or below budget; income counts income
// transactions and is under when actual falls short of budget.
func (s *budgetService) Comparison(ctx context.Context, yearMonth string) ([]dto.BudgetComparisonRow, error) {
	items, err := s.GetMonthBudget(ctx, yearMonth)
	if err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionListFilter{YearMonth: &yearMonth})
	if err != nil {
		return nil, err
	}

	actuals := map[string]decimal.Decimal{}
	for _, t := range txns {
		actuals[string(t.Type)+"/"+t.CategoryID] = actuals[string(t.Type)+"/"+t.CategoryID].Add(t.Amount)
	}

	rows := make([]dto.BudgetComparisonRow, 0, len(items))
	for _, item := range items {
		var measured domain.TransactionType
		switch domain.CategoryType(item.CategoryType) {
		case domain.CategoryExpense, domain.CategoryFund:
			measured = domain.TxnExpense
		case domain.CategoryDeduction:
			measured = domain.TxnDeduction
		default:
			measured = domain.TxnIncome
		}
		actual := actuals[string(measured)+"/"+item.CategoryID]

		outflow := domain.CategoryType(item.CategoryType) != domain.CategoryIncome
		var difference decimal.Decimal
		status := "over"
		if outflow {
			difference = item.Amount.Sub(actual)
			if actual.LessThanOrEqual(item.Amount) {
				status = "under"
			}
		} else {
			difference = actual.Sub(item.Amount)
			if actual.GreaterThanOrEqual(item.Amount) {
				status = "under"
			}
		}

		rows = append(rows, dto.BudgetComparisonRow{
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			CategoryType: item.CategoryType,
			Budget:       item.Amount,
			Actual:       actual,
			Difference:   difference,
			Status:       status,
		})
	}
	return rows, nil
}
