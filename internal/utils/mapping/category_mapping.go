package mapping

import (
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/jmwalsh/budgetbook/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:    d.CategoryID,
		Name:          d.Name,
		Type:          string(d.Type),
		GroupID:       d.GroupID,
		DefaultBudget: d.DefaultBudget,
		IsCustom:      d.IsCustom,
		SortOrder:     d.SortOrder,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:    m.CategoryID,
		Name:          m.Name,
		Type:          domain.CategoryType(m.Type),
		GroupID:       m.GroupID,
		DefaultBudget: m.DefaultBudget,
		IsCustom:      m.IsCustom,
		SortOrder:     m.SortOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainCategorySlice converts a slice of model Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}

// ToModelCategoryGroup converts a domain CategoryGroup to a model CategoryGroup
func ToModelCategoryGroup(d domain.CategoryGroup) models.CategoryGroup {
	return models.CategoryGroup{
		GroupID:   d.GroupID,
		Name:      d.Name,
		Type:      string(d.Type),
		SortOrder: d.SortOrder,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// ToDomainCategoryGroup converts a model CategoryGroup to a domain CategoryGroup
func ToDomainCategoryGroup(m models.CategoryGroup) domain.CategoryGroup {
	return domain.CategoryGroup{
		GroupID:   m.GroupID,
		Name:      m.Name,
		Type:      domain.CategoryType(m.Type),
		SortOrder: m.SortOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToDomainCategoryGroupSlice converts a slice of model CategoryGroups
func ToDomainCategoryGroupSlice(ms []models.CategoryGroup) []domain.CategoryGroup {
	ds := make([]domain.CategoryGroup, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategoryGroup(m)
	}
	return ds
}
