package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/core/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

type TransactionServiceSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	mockFundRepo     *MockFundRepository
	service          portssvc.TransactionSvcFacade

	expenseCategory domain.Category
	fundCategory    domain.Category
	fund            domain.Fund
}

func (s *TransactionServiceSuite) SetupTest() {
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.mockFundRepo = new(MockFundRepository)
	s.service = services.NewTransactionService(s.mockTxnRepo, s.mockCategoryRepo, s.mockFundRepo)

	s.expenseCategory = domain.Category{
		CategoryID: uuid.NewString(),
		Name:       "Groceries",
		Type:       domain.CategoryExpense,
	}
	s.fundCategory = domain.Category{
		CategoryID: uuid.NewString(),
		Name:       "Vacation",
		Type:       domain.CategoryFund,
	}
	s.fund = domain.Fund{
		FundID:         uuid.NewString(),
		Name:           "Vacation",
		CurrentBalance: decimal.Zero,
	}
}

func (s *TransactionServiceSuite) TestCreateOnPlainCategoryCarriesNoFundChange() {
	ctx := context.Background()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.expenseCategory.CategoryID).Return(&s.expenseCategory, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			s.Nil(args.Get(2))
		}).Return(nil).Once()

	txn, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(42),
		Type:       "expense",
		CategoryID: s.expenseCategory.CategoryID,
		Date:       "2025-07-01",
		Merchant:   "KROGER",
	})

	s.Require().NoError(err)
	s.Require().NotNil(txn)
	s.NotEmpty(txn.TransactionID)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceSuite) TestContributionGrowsFundBalance() {
	ctx := context.Background()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.fundCategory.CategoryID).Return(&s.fundCategory, nil).Once()
	s.mockFundRepo.On("FindFundByName", ctx, "Vacation").Return(&s.fund, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			changes := args.Get(2).([]portsrepo.FundBalanceChange)
			s.Require().Len(changes, 1)
			s.Equal(s.fund.FundID, changes[0].FundID)
			s.True(changes[0].Delta.Equal(decimal.NewFromInt(100)))
			s.False(changes[0].EnforceNonNegative)
		}).Return(nil).Once()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(100),
		Type:       "fund_contribution",
		CategoryID: s.fundCategory.CategoryID,
		Date:       "2025-07-01",
	})

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceSuite) TestUpdateReversesOldEffectBeforeApplyingNew() {
	ctx := context.Background()
	prior := domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        decimal.NewFromInt(100),
		Type:          domain.TxnFundContribution,
		CategoryID:    s.fundCategory.CategoryID,
	}
	s.fund.CurrentBalance = decimal.NewFromInt(100)
	newAmount := decimal.NewFromInt(150)

	s.mockTxnRepo.On("FindTransactionByID", ctx, prior.TransactionID).Return(&prior, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.fundCategory.CategoryID).Return(&s.fundCategory, nil).Once()
	s.mockFundRepo.On("FindFundByName", ctx, "Vacation").Return(&s.fund, nil).Twice()
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reverse := args.Get(2).([]portsrepo.FundBalanceChange)
			apply := args.Get(3).([]portsrepo.FundBalanceChange)
			s.Require().Len(reverse, 1)
			s.Require().Len(apply, 1)
			// net effect is 150, not 250: the old 100 is undone first
			s.True(reverse[0].Delta.Equal(decimal.NewFromInt(-100)))
			s.True(apply[0].Delta.Equal(decimal.NewFromInt(150)))
		}).Return(nil).Once()

	updated, err := s.service.UpdateTransaction(ctx, prior.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	s.Require().NoError(err)
	s.True(updated.Amount.Equal(newAmount))
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceSuite) TestDeleteReversesRecordedEffect() {
	ctx := context.Background()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Amount:        decimal.NewFromInt(150),
		Type:          domain.TxnFundContribution,
		CategoryID:    s.fundCategory.CategoryID,
	}
	s.fund.CurrentBalance = decimal.NewFromInt(150)

	s.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(&txn, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.fundCategory.CategoryID).Return(&s.fundCategory, nil).Once()
	s.mockFundRepo.On("FindFundByName", ctx, "Vacation").Return(&s.fund, nil).Once()
	s.mockTxnRepo.On("DeleteTransaction", ctx, txn.TransactionID, mock.Anything).
		Run(func(args mock.Arguments) {
			reverse := args.Get(2).([]portsrepo.FundBalanceChange)
			s.Require().Len(reverse, 1)
			s.True(reverse[0].Delta.Equal(decimal.NewFromInt(-150)))
		}).Return(nil).Once()

	err := s.service.DeleteTransaction(ctx, txn.TransactionID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceSuite) TestOverdrawnWithdrawalRejectedBeforeAnyWrite() {
	ctx := context.Background()
	s.fund.CurrentBalance = decimal.NewFromInt(20)

	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.fundCategory.CategoryID).Return(&s.fundCategory, nil).Once()
	s.mockFundRepo.On("FindFundByName", ctx, "Vacation").Return(&s.fund, nil).Once()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(50),
		Type:       "fund_withdrawal",
		CategoryID: s.fundCategory.CategoryID,
		Date:       "2025-07-01",
	})

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionServiceSuite) TestNegativeAmountRejected() {
	ctx := context.Background()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(-5),
		Type:       "expense",
		CategoryID: s.expenseCategory.CategoryID,
		Date:       "2025-07-01",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceSuite) TestFutureDateRejected() {
	ctx := context.Background()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(5),
		Type:       "expense",
		CategoryID: s.expenseCategory.CategoryID,
		Date:       "2999-01-01",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *TransactionServiceSuite) TestUnknownCategoryRejected() {
	ctx := context.Background()
	s.mockCategoryRepo.On("FindCategoryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:     decimal.NewFromInt(5),
		Type:       "expense",
		CategoryID: "missing",
		Date:       "2025-07-01",
	})

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

// Drives a create/update/delete sequence through the service while applying
// every emitted balance delta to a live fund, then recomputes the balance from
// the surviving ledger the way RefreshBalances does. The two must agree.
func (s *TransactionServiceSuite) TestIncrementalBalanceMatchesLedgerRecomputation() {
	ctx := context.Background()
	ledger := map[string]domain.Transaction{}

	applyChanges := func(changes []portsrepo.FundBalanceChange) {
		for _, c := range changes {
			s.Equal(s.fund.FundID, c.FundID)
			s.fund.CurrentBalance = s.fund.CurrentBalance.Add(c.Delta)
		}
	}

	s.mockCategoryRepo.On("FindCategoryByID", ctx, s.fundCategory.CategoryID).Return(&s.fundCategory, nil)
	s.mockFundRepo.On("FindFundByName", ctx, "Vacation").Return(&s.fund, nil)
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(domain.Transaction)
			ledger[txn.TransactionID] = txn
			if changes, ok := args.Get(2).([]portsrepo.FundBalanceChange); ok {
				applyChanges(changes)
			}
		}).Return(nil)
	s.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(domain.Transaction)
			ledger[txn.TransactionID] = txn
			applyChanges(args.Get(2).([]portsrepo.FundBalanceChange))
			applyChanges(args.Get(3).([]portsrepo.FundBalanceChange))
		}).Return(nil)
	s.mockTxnRepo.On("DeleteTransaction", ctx, mock.AnythingOfType("string"), mock.Anything).
		Run(func(args mock.Arguments) {
			delete(ledger, args.Get(1).(string))
			applyChanges(args.Get(2).([]portsrepo.FundBalanceChange))
		}).Return(nil)

	first, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount: decimal.NewFromInt(100), Type: "fund_contribution",
		CategoryID: s.fundCategory.CategoryID, Date: "2025-07-01",
	})
	s.Require().NoError(err)

	second, err := s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount: decimal.NewFromInt(40), Type: "fund_contribution",
		CategoryID: s.fundCategory.CategoryID, Date: "2025-07-02",
	})
	s.Require().NoError(err)

	firstNow := ledger[first.TransactionID]
	s.mockTxnRepo.On("FindTransactionByID", ctx, first.TransactionID).Return(&firstNow, nil).Once()
	newAmount := decimal.NewFromInt(150)
	_, err = s.service.UpdateTransaction(ctx, first.TransactionID, dto.UpdateTransactionRequest{Amount: &newAmount})
	s.Require().NoError(err)

	_, err = s.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount: decimal.NewFromInt(60), Type: "fund_withdrawal",
		CategoryID: s.fundCategory.CategoryID, Date: "2025-07-03",
	})
	s.Require().NoError(err)

	secondNow := ledger[second.TransactionID]
	s.mockTxnRepo.On("FindTransactionByID", ctx, second.TransactionID).Return(&secondNow, nil).Once()
	s.Require().NoError(s.service.DeleteTransaction(ctx, second.TransactionID))

	// 100 +40 (+50 via update) -60 -40 = 90
	s.True(s.fund.CurrentBalance.Equal(decimal.NewFromInt(90)))

	recomputed := decimal.Zero
	for _, txn := range ledger {
		switch txn.Type {
		case domain.TxnFundContribution, domain.TxnExpense:
			recomputed = recomputed.Add(txn.Amount)
		case domain.TxnFundWithdrawal:
			recomputed = recomputed.Sub(txn.Amount)
		}
	}
	s.True(recomputed.Equal(s.fund.CurrentBalance))
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceSuite))
}
