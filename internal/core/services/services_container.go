package services

import (
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Category = NewCategoryService(
		repos.CategoryRepo,
		repos.CategoryGroupRepo,
		repos.FundRepo,
		repos.TransactionRepo,
	)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		repos.FundRepo,
	)
	container.Fund = NewFundService(
		repos.FundRepo,
		repos.CategoryRepo,
		repos.CategoryGroupRepo,
		repos.TransactionRepo,
	)
	container.Categorizer = NewCategorizerService(repos.KeywordRepo)
	container.Import = NewImporterService(
		container.Categorizer,
		repos.CategoryRepo,
		repos.FundRepo,
		repos.TransactionRepo,
	)
	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
	)
	container.Reporting = NewReportingService(
		repos.TransactionRepo,
		repos.CategoryRepo,
		repos.FundRepo,
	)

	return container
}
