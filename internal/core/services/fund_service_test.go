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

type FundServiceSuite struct {
	suite.Suite
	mockFundRepo     *MockFundRepository
	mockCategoryRepo *MockCategoryRepository
	mockGroupRepo    *MockCategoryGroupRepository
	mockTxnRepo      *MockTransactionRepository
	service          portssvc.FundSvcFacade

	fund         domain.Fund
	fundCategory domain.Category
}

func (s *FundServiceSuite) SetupTest() {
	s.mockFundRepo = new(MockFundRepository)
	s.mockCategoryRepo = new(MockCategoryRepository)
	s.mockGroupRepo = new(MockCategoryGroupRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.service = services.NewFundService(s.mockFundRepo, s.mockCategoryRepo, s.mockGroupRepo, s.mockTxnRepo)

	s.fund = domain.Fund{
		FundID:         uuid.NewString(),
		Name:           "Emergency",
		CurrentBalance: decimal.NewFromInt(200),
	}
	s.fundCategory = domain.Category{
		CategoryID: uuid.NewString(),
		Name:       "Emergency",
		Type:       domain.CategoryFund,
	}
}

func (s *FundServiceSuite) TestCreateFundAlsoCreatesBoundCategory() {
	ctx := context.Background()
	monthly := decimal.NewFromInt(50)

	s.mockFundRepo.On("FindFundByName", ctx, "Vacation").Return(nil, apperrors.ErrNotFound).Once()
	s.mockFundRepo.On("SaveFund", ctx, mock.AnythingOfType("domain.Fund")).Return(nil).Once()
	s.mockGroupRepo.On("FindGroupByName", ctx, "Savings", domain.CategoryFund).
		Return(&domain.CategoryGroup{GroupID: uuid.NewString(), Name: "Savings", Type: domain.CategoryFund}, nil).Once()
	s.mockCategoryRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).
		Run(func(args mock.Arguments) {
			cat := args.Get(1).(domain.Category)
			s.Equal("Vacation", cat.Name)
			s.Equal(domain.CategoryFund, cat.Type)
			s.True(cat.DefaultBudget.Equal(monthly))
		}).Return(nil).Once()

	fund, err := s.service.CreateFund(ctx, dto.CreateFundRequest{
		Name:                "Vacation",
		MonthlyContribution: &monthly,
	})

	s.Require().NoError(err)
	s.True(fund.CurrentBalance.IsZero())
	s.mockCategoryRepo.AssertExpectations(s.T())
}

func (s *FundServiceSuite) TestCreateFundDuplicateNameRejected() {
	ctx := context.Background()
	s.mockFundRepo.On("FindFundByName", ctx, "Emergency").Return(&s.fund, nil).Once()

	_, err := s.service.CreateFund(ctx, dto.CreateFundRequest{Name: "Emergency"})

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
	s.mockFundRepo.AssertNotCalled(s.T(), "SaveFund", mock.Anything, mock.Anything)
}

func (s *FundServiceSuite) TestContributeRecordsTransactionAndDelta() {
	ctx := context.Background()
	s.mockFundRepo.On("FindFundByID", ctx, s.fund.FundID).Return(&s.fund, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByName", ctx, "Emergency").Return(&s.fundCategory, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			txn := args.Get(1).(domain.Transaction)
			changes := args.Get(2).([]portsrepo.FundBalanceChange)
			s.Equal(domain.TxnFundContribution, txn.Type)
			s.Equal(s.fundCategory.CategoryID, txn.CategoryID)
			s.Require().Len(changes, 1)
			s.True(changes[0].Delta.Equal(decimal.NewFromInt(75)))
		}).Return(nil).Once()

	fund, err := s.service.Contribute(ctx, s.fund.FundID, dto.FundAmountRequest{Amount: decimal.NewFromInt(75)})

	s.Require().NoError(err)
	s.True(fund.CurrentBalance.Equal(decimal.NewFromInt(275)))
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *FundServiceSuite) TestWithdrawBeyondBalanceRejected() {
	ctx := context.Background()
	s.fund.CurrentBalance = decimal.NewFromInt(20)
	s.mockFundRepo.On("FindFundByID", ctx, s.fund.FundID).Return(&s.fund, nil).Once()

	_, err := s.service.Withdraw(ctx, s.fund.FundID, dto.FundAmountRequest{Amount: decimal.NewFromInt(50)})

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *FundServiceSuite) TestWithdrawShrinksBalanceWithGuard() {
	ctx := context.Background()
	s.mockFundRepo.On("FindFundByID", ctx, s.fund.FundID).Return(&s.fund, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByName", ctx, "Emergency").Return(&s.fundCategory, nil).Once()
	s.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).
		Run(func(args mock.Arguments) {
			changes := args.Get(2).([]portsrepo.FundBalanceChange)
			s.Require().Len(changes, 1)
			s.True(changes[0].Delta.Equal(decimal.NewFromInt(-80)))
			s.True(changes[0].EnforceNonNegative)
		}).Return(nil).Once()

	fund, err := s.service.Withdraw(ctx, s.fund.FundID, dto.FundAmountRequest{Amount: decimal.NewFromInt(80)})

	s.Require().NoError(err)
	s.True(fund.CurrentBalance.Equal(decimal.NewFromInt(120)))
}

func (s *FundServiceSuite) TestRefreshRecomputesBalancesFromLedger() {
	ctx := context.Background()
	s.mockFundRepo.On("ListFunds", ctx).Return([]domain.Fund{s.fund}, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByName", ctx, "Emergency").Return(&s.fundCategory, nil).Once()
	s.mockTxnRepo.On("SumAmountByCategoryAndTypes", ctx, s.fundCategory.CategoryID,
		[]domain.TransactionType{domain.TxnFundContribution, domain.TxnExpense}).
		Return(decimal.NewFromInt(300), nil).Once()
	s.mockTxnRepo.On("SumAmountByCategoryAndTypes", ctx, s.fundCategory.CategoryID,
		[]domain.TransactionType{domain.TxnFundWithdrawal}).
		Return(decimal.NewFromInt(120), nil).Once()
	s.mockFundRepo.On("ReplaceBalances", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			balances := args.Get(1).(map[string]decimal.Decimal)
			s.Require().Len(balances, 1)
			s.True(balances[s.fund.FundID].Equal(decimal.NewFromInt(180)))
		}).Return(nil).Once()

	err := s.service.RefreshBalances(ctx)

	s.Require().NoError(err)
	s.mockFundRepo.AssertExpectations(s.T())
}

func (s *FundServiceSuite) TestRefreshSkipsFundWithoutCategory() {
	ctx := context.Background()
	orphan := domain.Fund{FundID: uuid.NewString(), Name: "Orphan"}
	s.mockFundRepo.On("ListFunds", ctx).Return([]domain.Fund{orphan}, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByName", ctx, "Orphan").Return(nil, apperrors.ErrNotFound).Once()
	s.mockFundRepo.On("ReplaceBalances", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			s.Empty(args.Get(1).(map[string]decimal.Decimal))
		}).Return(nil).Once()

	err := s.service.RefreshBalances(ctx)

	s.Require().NoError(err)
}

func (s *FundServiceSuite) TestDeleteFundCascadesCategoryAndTransactions() {
	ctx := context.Background()
	s.mockFundRepo.On("FindFundByID", ctx, s.fund.FundID).Return(&s.fund, nil).Once()
	s.mockCategoryRepo.On("FindCategoryByName", ctx, "Emergency").Return(&s.fundCategory, nil).Once()
	s.mockTxnRepo.On("DeleteTransactionsByCategory", ctx, s.fundCategory.CategoryID).Return(nil).Once()
	s.mockCategoryRepo.On("DeleteCategory", ctx, s.fundCategory.CategoryID).Return(nil).Once()
	s.mockFundRepo.On("DeleteFund", ctx, s.fund.FundID).Return(nil).Once()

	err := s.service.DeleteFund(ctx, s.fund.FundID)

	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
	s.mockCategoryRepo.AssertExpectations(s.T())
	s.mockFundRepo.AssertExpectations(s.T())
}

func (s *FundServiceSuite) TestRenamePropagatesToCategory() {
	ctx := context.Background()
	newName := "Emergency Fund"
	s.mockFundRepo.On("FindFundByID", ctx, s.fund.FundID).Return(&s.fund, nil).Once()
	s.mockFundRepo.On("UpdateFund", ctx, mock.AnythingOfType("domain.Fund")).Return(nil).Once()
	s.mockCategoryRepo.On("FindCategoryByName", ctx, "Emergency").Return(&s.fundCategory, nil).Once()
	s.mockCategoryRepo.On("UpdateCategory", ctx, mock.AnythingOfType("domain.Category")).
		Run(func(args mock.Arguments) {
			s.Equal(newName, args.Get(1).(domain.Category).Name)
		}).Return(nil).Once()

	fund, err := s.service.UpdateFund(ctx, s.fund.FundID, dto.UpdateFundRequest{Name: &newName})

	s.Require().NoError(err)
	s.Equal(newName, fund.Name)
	s.mockCategoryRepo.AssertExpectations(s.T())
}

func TestFundServiceSuite(t *testing.T) {
	suite.Run(t, new(FundServiceSuite))
}
