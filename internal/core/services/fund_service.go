package services

import (
	"context"
	"errors"
	"fmt"
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
)

// savingsGroupName is the display group new fund categories are filed under.
const savingsGroupName = "Savings"

// fundService manages savings funds and keeps each fund's 1:1 category in
// sync: same name, fund type, default budget mirroring the monthly
// contribution.
type fundService struct {
	fundRepo     portsrepo.FundRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	groupRepo    portsrepo.CategoryGroupRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	now          func() time.Time
}

// NewFundService creates a new FundService.
func NewFundService(
	fundRepo portsrepo.FundRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	groupRepo portsrepo.CategoryGroupRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) portssvc.FundSvcFacade {
	return &fundService{
		fundRepo:     fundRepo,
		categoryRepo: categoryRepo,
		groupRepo:    groupRepo,
		txnRepo:      txnRepo,
		now:          time.Now,
	}
}

var _ portssvc.FundSvcFacade = (*fundService)(nil)

func (s *fundService) ListFunds(ctx context.Context) ([]domain.Fund, error) {
	return s.fundRepo.ListFunds(ctx)
}

func (s *fundService) GetFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	return s.fundRepo.FindFundByID(ctx, fundID)
}

func (s *fundService) CreateFund(ctx context.Context, req dto.CreateFundRequest) (*domain.Fund, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: fund name is required", apperrors.ErrValidation)
	}
	if existing, err := s.fundRepo.FindFundByName(ctx, name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: fund %q already exists", apperrors.ErrDuplicate, name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	goal := decimal.Zero
	if req.Goal != nil {
		if err := validateAmount(*req.Goal); err != nil {
			return nil, err
		}
		goal = *req.Goal
	}
	monthly := decimal.Zero
	if req.MonthlyContribution != nil {
		if err := validateAmount(*req.MonthlyContribution); err != nil {
			return nil, err
		}
		monthly = *req.MonthlyContribution
	}
	var goalDate *time.Time
	if req.GoalDate != "" {
		d, err := time.Parse("2006-01-02", req.GoalDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid goal date %q, expected YYYY-MM-DD", apperrors.ErrValidation, req.GoalDate)
		}
		goalDate = &d
	}

	now := s.now()
	fund := domain.Fund{
		FundID:              uuid.NewString(),
		Name:                name,
		Goal:                goal,
		GoalDate:            goalDate,
		CurrentBalance:      decimal.Zero,
		MonthlyContribution: monthly,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.fundRepo.SaveFund(ctx, fund); err != nil {
		return nil, err
	}

	category := domain.Category{
		CategoryID:    uuid.NewString(),
		Name:          name,
		Type:          domain.CategoryFund,
		GroupID:       s.savingsGroupID(ctx),
		DefaultBudget: monthly,
		IsCustom:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category for fund %q: %w", name, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("fund created", "fundID", fund.FundID, "name", name)
	return &fund, nil
}

// savingsGroupID resolves the Savings group, creating it when absent. A nil
// return files the category ungrouped.
func (s *fundService) savingsGroupID(ctx context.Context) *string {
	group, err := s.groupRepo.FindGroupByName(ctx, savingsGroupName, domain.CategoryFund)
	if err == nil && group != nil {
		return &group.GroupID
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	now := s.now()
	created := domain.CategoryGroup{
		GroupID: uuid.NewString(),
		Name:    savingsGroupName,
		Type:    domain.CategoryFund,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.groupRepo.SaveGroup(ctx, created); err != nil {
		return nil
	}
	return &created.GroupID
}

func (s *fundService) UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest) (*domain.Fund, error) {
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	oldName := fund.Name

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: fund name cannot be empty", apperrors.ErrValidation)
		}
		fund.Name = name
	}
	if req.Goal != nil {
		if err := validateAmount(*req.Goal); err != nil {
			return nil, err
		}
		fund.Goal = *req.Goal
	}
	if req.MonthlyContribution != nil {
		if err := validateAmount(*req.MonthlyContribution); err != nil {
			return nil, err
		}
		fund.MonthlyContribution = *req.MonthlyContribution
	}
	if req.GoalDate != nil {
		if *req.GoalDate == "" {
			fund.GoalDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *req.GoalDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid goal date %q, expected YYYY-MM-DD", apperrors.ErrValidation, *req.GoalDate)
			}
			fund.GoalDate = &d
		}
	}
	fund.LastUpdatedAt = s.now()

	if err := s.fundRepo.UpdateFund(ctx, *fund); err != nil {
		return nil, err
	}

	// Propagate rename and contribution change to the bound category.
	category, err := s.categoryRepo.FindCategoryByName(ctx, oldName)
	if err == nil && category.Type == domain.CategoryFund {
		category.Name = fund.Name
		category.DefaultBudget = fund.MonthlyContribution
		category.LastUpdatedAt = fund.LastUpdatedAt
		if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
			return nil, fmt.Errorf("failed to sync category for fund %q: %w", fund.Name, err)
		}
	}

	middleware.GetLoggerFromCtx(ctx).Info("fund updated", "fundID", fundID)
	return fund, nil
}

func (s *fundService) DeleteFund(ctx context.Context, fundID string) error {
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return err
	}

	category, err := s.categoryRepo.FindCategoryByName(ctx, fund.Name)
	if err == nil && category.Type == domain.CategoryFund {
		if err := s.txnRepo.DeleteTransactionsByCategory(ctx, category.CategoryID); err != nil {
			return err
		}
		if err := s.categoryRepo.DeleteCategory(ctx, category.CategoryID); err != nil {
			return err
		}
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if err := s.fundRepo.DeleteFund(ctx, fundID); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("fund deleted", "fundID", fundID, "name", fund.Name)
	return nil
}

func (s *fundService) Contribute(ctx context.Context, fundID string, req dto.FundAmountRequest) (*domain.Fund, error) {
	return s.moveMoney(ctx, fundID, req, domain.TxnFundContribution)
}

func (s *fundService) Withdraw(ctx context.Context, fundID string, req dto.FundAmountRequest) (*domain.Fund, error) {
	return s.moveMoney(ctx, fundID, req, domain.TxnFundWithdrawal)
}

func (s *fundService) moveMoney(ctx context.Context, fundID string, req dto.FundAmountRequest, txnType domain.TransactionType) (*domain.Fund, error) {
	if req.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	fund, err := s.fundRepo.FindFundByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if txnType == domain.TxnFundWithdrawal && fund.CurrentBalance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: insufficient fund balance", apperrors.ErrConflict)
	}

	category, err := s.categoryRepo.FindCategoryByName(ctx, fund.Name)
	if err != nil {
		return nil, fmt.Errorf("fund category %q missing: %w", fund.Name, err)
	}

	verb := "Contribution to"
	if txnType == domain.TxnFundWithdrawal {
		verb = "Withdrawal from"
	}
	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        req.Amount,
		Type:          txnType,
		CategoryID:    category.CategoryID,
		Date:          now,
		Description:   fmt.Sprintf("%s %s", verb, fund.Name),
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	change := portsrepo.FundBalanceChange{
		FundID:             fund.FundID,
		Delta:              txn.FundEffect(domain.CategoryFund),
		EnforceNonNegative: txnType == domain.TxnFundWithdrawal,
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn, []portsrepo.FundBalanceChange{change}); err != nil {
		return nil, err
	}

	fund.CurrentBalance = fund.CurrentBalance.Add(change.Delta)
	middleware.GetLoggerFromCtx(ctx).Info("fund balance moved",
		"fundID", fundID, "type", txnType, "amount", req.Amount, "balance", fund.CurrentBalance)
	return fund, nil
}

// RefreshBalances recomputes every fund balance from the ledger and
// overwrites the stored values. Contribution-class entries (explicit
// contributions plus expenses posted to the fund category) add, withdrawals
// subtract. Safe to run at any time; a second run changes nothing.
func (s *fundService) RefreshBalances(ctx context.Context) error {
	funds, err := s.fundRepo.ListFunds(ctx)
	if err != nil {
		return err
	}

	balances := make(map[string]decimal.Decimal, len(funds))
	for _, fund := range funds {
		category, err := s.categoryRepo.FindCategoryByName(ctx, fund.Name)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}
		contributions, err := s.txnRepo.SumAmountByCategoryAndTypes(ctx, category.CategoryID,
			[]domain.TransactionType{domain.TxnFundContribution, domain.TxnExpense})
		if err != nil {
			return err
		}
		withdrawals, err := s.txnRepo.SumAmountByCategoryAndTypes(ctx, category.CategoryID,
			[]domain.TransactionType{domain.TxnFundWithdrawal})
		if err != nil {
			return err
		}
		balances[fund.FundID] = contributions.Sub(withdrawals)
	}

	if err := s.fundRepo.ReplaceBalances(ctx, balances); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("fund balances refreshed", "count", len(balances))
	return nil
}
