package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
)

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindOrCreateCategory(ctx context.Context, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	args := m.Called(ctx, name, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	args := m.Called(ctx, orderedIDs)
	return args.Error(0)
}

// --- Mock CategoryGroupRepository ---

type MockCategoryGroupRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryGroupRepositoryFacade = (*MockCategoryGroupRepository)(nil)

func (m *MockCategoryGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.CategoryGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryGroup), args.Error(1)
}

func (m *MockCategoryGroupRepository) FindGroupByName(ctx context.Context, name string, groupType domain.CategoryType) (*domain.CategoryGroup, error) {
	args := m.Called(ctx, name, groupType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryGroup), args.Error(1)
}

func (m *MockCategoryGroupRepository) ListGroups(ctx context.Context) ([]domain.CategoryGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryGroup), args.Error(1)
}

func (m *MockCategoryGroupRepository) SaveGroup(ctx context.Context, group domain.CategoryGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockCategoryGroupRepository) UpdateGroup(ctx context.Context, group domain.CategoryGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockCategoryGroupRepository) DeleteGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *MockCategoryGroupRepository) ReorderGroups(ctx context.Context, orderedIDs []string) error {
	args := m.Called(ctx, orderedIDs)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionListFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumAmountByCategoryAndTypes(ctx context.Context, categoryID string, types []domain.TransactionType) (decimal.Decimal, error) {
	args := m.Called(ctx, categoryID, types)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes []portsrepo.FundBalanceChange) error {
	args := m.Called(ctx, txn, changes)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction, changes []portsrepo.FundBalanceChange) error {
	args := m.Called(ctx, txns, changes)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, reverse, apply []portsrepo.FundBalanceChange) error {
	args := m.Called(ctx, txn, reverse, apply)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, reverse []portsrepo.FundBalanceChange) error {
	args := m.Called(ctx, transactionID, reverse)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsByCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

// --- Mock FundRepository ---

type MockFundRepository struct {
	mock.Mock
}

var _ portsrepo.FundRepositoryFacade = (*MockFundRepository)(nil)

func (m *MockFundRepository) FindFundByID(ctx context.Context, fundID string) (*domain.Fund, error) {
	args := m.Called(ctx, fundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fund), args.Error(1)
}

func (m *MockFundRepository) FindFundByName(ctx context.Context, name string) (*domain.Fund, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fund), args.Error(1)
}

func (m *MockFundRepository) ListFunds(ctx context.Context) ([]domain.Fund, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fund), args.Error(1)
}

func (m *MockFundRepository) SaveFund(ctx context.Context, fund domain.Fund) error {
	args := m.Called(ctx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) UpdateFund(ctx context.Context, fund domain.Fund) error {
	args := m.Called(ctx, fund)
	return args.Error(0)
}

func (m *MockFundRepository) DeleteFund(ctx context.Context, fundID string) error {
	args := m.Called(ctx, fundID)
	return args.Error(0)
}

func (m *MockFundRepository) ReplaceBalances(ctx context.Context, balances map[string]decimal.Decimal) error {
	args := m.Called(ctx, balances)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) ListBudgetsByMonth(ctx context.Context, yearMonth string) ([]domain.Budget, error) {
	args := m.Called(ctx, yearMonth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpsertBudgets(ctx context.Context, budgets []domain.Budget) error {
	args := m.Called(ctx, budgets)
	return args.Error(0)
}

// --- Mock KeywordRepository ---

type MockKeywordRepository struct {
	mock.Mock
}

var _ portsrepo.KeywordRepositoryFacade = (*MockKeywordRepository)(nil)

func (m *MockKeywordRepository) ListKeywords(ctx context.Context) ([]domain.KeywordMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeywordMapping), args.Error(1)
}

func (m *MockKeywordRepository) UpsertKeyword(ctx context.Context, keyword, category string) error {
	args := m.Called(ctx, keyword, category)
	return args.Error(0)
}

func (m *MockKeywordRepository) SaveKeywords(ctx context.Context, mappings []domain.KeywordMapping) error {
	args := m.Called(ctx, mappings)
	return args.Error(0)
}

// --- Mock CategorizerService ---

type MockCategorizerService struct {
	mock.Mock
}

var _ portssvc.CategorizerSvcFacade = (*MockCategorizerService)(nil)

func (m *MockCategorizerService) Categorize(ctx context.Context, merchant string) (string, bool, error) {
	args := m.Called(ctx, merchant)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCategorizerService) AddKeyword(ctx context.Context, keyword, category string) error {
	args := m.Called(ctx, keyword, category)
	return args.Error(0)
}

func (m *MockCategorizerService) ListKeywords(ctx context.Context) ([]domain.KeywordMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeywordMapping), args.Error(1)
}

func (m *MockCategorizerService) SeedDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
