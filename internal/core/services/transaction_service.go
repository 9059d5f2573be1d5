package services

import (
	"context"
	"errors"
	"fmt"
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

// transactionService owns ledger mutations. Every write that touches a
// fund-bound category carries the matching balance delta into the repository
// so ledger and fund commit in one database transaction.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
	fundRepo     portsrepo.FundRepositoryFacade
	now          func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	fundRepo portsrepo.FundRepositoryFacade,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		fundRepo:     fundRepo,
		now:          time.Now,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func validateAmount(amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}
	return nil
}

func (s *transactionService) validateDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, raw)
	}
	if date.After(s.now()) {
		return time.Time{}, fmt.Errorf("%w: date cannot be in the future", apperrors.ErrValidation)
	}
	return date, nil
}

// fundChange computes the balance delta a transaction applies to the fund
// bound to its category. Mirrors category/fund binding by name; a fund
// category with no fund record is a no-op, matching the tolerance of manual
// category management.
func (s *transactionService) fundChange(ctx context.Context, category *domain.Category, txn domain.Transaction) (*portsrepo.FundBalanceChange, *domain.Fund, error) {
	if category.Type != domain.CategoryFund {
		return nil, nil, nil
	}
	fund, err := s.fundRepo.FindFundByName(ctx, category.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to find fund for category %q: %w", category.Name, err)
	}
	delta := txn.FundEffect(category.Type)
	if delta.IsZero() {
		return nil, fund, nil
	}
	return &portsrepo.FundBalanceChange{
		FundID:             fund.FundID,
		Delta:              delta,
		EnforceNonNegative: txn.Type == domain.TxnFundWithdrawal,
	}, fund, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	date, err := s.validateDate(req.Date)
	if err != nil {
		return nil, err
	}
	txnType := domain.TransactionType(req.Type)
	if !domain.ValidTransactionType(txnType) {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        req.Amount,
		Type:          txnType,
		CategoryID:    category.CategoryID,
		Date:          date,
		Merchant:      req.Merchant,
		Description:   req.Description,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	change, fund, err := s.fundChange(ctx, category, txn)
	if err != nil {
		return nil, err
	}
	// Reject an overdraw before any state is written. The repository
	// enforces the same bound again under its row lock.
	if change != nil && change.EnforceNonNegative && fund.CurrentBalance.Add(change.Delta).Sign() < 0 {
		return nil, fmt.Errorf("%w: insufficient fund balance", apperrors.ErrConflict)
	}

	var changes []portsrepo.FundBalanceChange
	if change != nil {
		changes = append(changes, *change)
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn, changes); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("transaction created",
		"transactionID", txn.TransactionID, "type", txn.Type, "amount", txn.Amount)
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionListFilter{}
	if params.YearMonth != "" {
		if _, err := time.Parse("2006-01", params.YearMonth); err != nil {
			return nil, fmt.Errorf("%w: invalid month %q, expected YYYY-MM", apperrors.ErrValidation, params.YearMonth)
		}
		filter.YearMonth = &params.YearMonth
	}
	if params.Type != "" {
		txnType := domain.TransactionType(params.Type)
		if !domain.ValidTransactionType(txnType) {
			return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, params.Type)
		}
		filter.Type = &txnType
	}
	if params.CategoryID != "" {
		filter.CategoryID = &params.CategoryID
	}
	return s.txnRepo.ListTransactions(ctx, filter)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	prior, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	priorCategory, err := s.categoryRepo.FindCategoryByID(ctx, prior.CategoryID)
	if err != nil {
		return nil, err
	}

	updated := *prior
	if req.Amount != nil {
		if err := validateAmount(*req.Amount); err != nil {
			return nil, err
		}
		updated.Amount = *req.Amount
	}
	if req.Type != nil {
		txnType := domain.TransactionType(*req.Type)
		if !domain.ValidTransactionType(txnType) {
			return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, *req.Type)
		}
		updated.Type = txnType
	}
	if req.CategoryID != nil {
		updated.CategoryID = *req.CategoryID
	}
	if req.Date != nil {
		date, err := s.validateDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updated.Date = date
	}
	if req.Merchant != nil {
		updated.Merchant = *req.Merchant
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	updated.LastUpdatedAt = s.now()

	newCategory := priorCategory
	if updated.CategoryID != prior.CategoryID {
		newCategory, err = s.categoryRepo.FindCategoryByID(ctx, updated.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	// Undo the prior fund effect, then apply the new one. The repository
	// runs both phases in that order inside one database transaction.
	var reverse, apply []portsrepo.FundBalanceChange

	priorEffect := prior.FundEffect(priorCategory.Type)
	var priorFund *domain.Fund
	if !priorEffect.IsZero() {
		priorFund, err = s.fundRepo.FindFundByName(ctx, priorCategory.Name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if priorFund != nil {
			reverse = append(reverse, portsrepo.FundBalanceChange{
				FundID: priorFund.FundID,
				Delta:  priorEffect.Neg(),
			})
		}
	}

	change, newFund, err := s.fundChange(ctx, newCategory, updated)
	if err != nil {
		return nil, err
	}
	if change != nil {
		if change.EnforceNonNegative {
			balance := newFund.CurrentBalance
			if priorFund != nil && priorFund.FundID == newFund.FundID {
				balance = balance.Add(priorEffect.Neg())
			}
			if balance.Add(change.Delta).Sign() < 0 {
				return nil, fmt.Errorf("%w: insufficient fund balance", apperrors.ErrConflict)
			}
		}
		apply = append(apply, *change)
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated, reverse, apply); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("transaction updated", "transactionID", transactionID)
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, txn.CategoryID)
	if err != nil {
		return err
	}

	// Deletion always reverses the recorded effect, even when that leaves
	// the fund negative: removing a contribution must not be blocked by the
	// withdrawal bound.
	var reverse []portsrepo.FundBalanceChange
	if effect := txn.FundEffect(category.Type); !effect.IsZero() {
		fund, err := s.fundRepo.FindFundByName(ctx, category.Name)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if fund != nil {
			reverse = append(reverse, portsrepo.FundBalanceChange{
				FundID: fund.FundID,
				Delta:  effect.Neg(),
			})
		}
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, reverse); err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).Info("transaction deleted", "transactionID", transactionID)
	return nil
}
