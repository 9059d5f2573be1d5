package mapping

import (
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/jmwalsh/budgetbook/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:   d.BudgetID,
		CategoryID: d.CategoryID,
		YearMonth:  d.YearMonth,
		Amount:     d.Amount,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:   m.BudgetID,
		CategoryID: m.CategoryID,
		YearMonth:  m.YearMonth,
		Amount:     m.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}

// ToDomainKeywordMapping converts a model CategoryKeyword
func ToDomainKeywordMapping(m models.CategoryKeyword) domain.KeywordMapping {
	return domain.KeywordMapping{
		Keyword:  m.Keyword,
		Category: m.Category,
		Position: m.Position,
	}
}

// ToDomainKeywordMappingSlice converts a slice of model CategoryKeywords
func ToDomainKeywordMappingSlice(ms []models.CategoryKeyword) []domain.KeywordMapping {
	ds := make([]domain.KeywordMapping, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainKeywordMapping(m)
	}
	return ds
}
