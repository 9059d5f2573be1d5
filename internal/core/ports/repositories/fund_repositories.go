package repositories

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FundReader defines read operations for fund data
type FundReader interface {
	// FindFundByID retrieves a specific fund.
	FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error)

	// FindFundByName retrieves the fund bound to the category of the same name.
	FindFundByName(ctx context.Context, name string) (*domain.Fund, error)

	// ListFunds retrieves all funds ordered by name.
	ListFunds(ctx context.Context) ([]domain.Fund, error)
}

// FundWriter defines write operations for fund data
type FundWriter interface {
	// SaveFund persists a new fund.
	SaveFund(ctx context.Context, fund domain.Fund) error

	// UpdateFund persists changes to an existing fund (not its balance).
	UpdateFund(ctx context.Context, fund domain.Fund) error

	// DeleteFund removes a fund.
	DeleteFund(ctx context.Context, fundID string) error

	// ReplaceBalances overwrites the stored balance of every fund in the map
	// within one database transaction. Used by reconciliation.
	ReplaceBalances(ctx context.Context, balances map[string]decimal.Decimal) error
}

// FundRepositoryFacade combines all fund-related repository interfaces
type FundRepositoryFacade interface {
	FundReader
	FundWriter
}
