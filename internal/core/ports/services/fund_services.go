package services

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

// FundSvcFacade manages savings funds and their 1:1 bound fund categories.
type FundSvcFacade interface {
	// ListFunds retrieves all funds.
	ListFunds(ctx context.Context) ([]domain.Fund, error)

	// GetFundByID retrieves a specific fund.
	GetFundByID(ctx context.Context, fundID string) (*domain.Fund, error)

	// CreateFund persists a new fund and its bound fund category.
	CreateFund(ctx context.Context, req dto.CreateFundRequest) (*domain.Fund, error)

	// UpdateFund applies partial updates; a rename propagates to the bound
	// category.
	UpdateFund(ctx context.Context, fundID string, req dto.UpdateFundRequest) (*domain.Fund, error)

	// DeleteFund removes the fund, its bound category, and that category's
	// transactions.
	DeleteFund(ctx context.Context, fundID string) error

	// Contribute records a fund_contribution transaction and grows the
	// balance atomically.
	Contribute(ctx context.Context, fundID string, req dto.FundAmountRequest) (*domain.Fund, error)

	// Withdraw records a fund_withdrawal transaction and shrinks the balance
	// atomically; rejected with apperrors.ErrConflict when it would go
	// negative.
	Withdraw(ctx context.Context, fundID string, req dto.FundAmountRequest) (*domain.Fund, error)

	// RefreshBalances recomputes every fund's balance from the ledger,
	// overwriting the stored value. Idempotent.
	RefreshBalances(ctx context.Context) error
}
