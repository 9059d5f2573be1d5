package dto

import (
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name          string           `json:"name" binding:"required"`
	Type          string           `json:"type" binding:"required,oneof=income deduction expense fund"`
	GroupName     string           `json:"groupName"`
	DefaultBudget *decimal.Decimal `json:"defaultBudget"`
}

// UpdateCategoryRequest defines partial updates to a category.
type UpdateCategoryRequest struct {
	Name          *string          `json:"name"`
	GroupName     *string          `json:"groupName"`
	DefaultBudget *decimal.Decimal `json:"defaultBudget"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string          `json:"categoryID"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	GroupID       *string         `json:"groupID,omitempty"`
	DefaultBudget decimal.Decimal `json:"defaultBudget"`
	IsCustom      bool            `json:"isCustom"`
	SortOrder     int             `json:"sortOrder"`
}

// ReorderRequest carries an ordered list of IDs for sort-order rewrites.
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIDs" binding:"required,min=1"`
}

// CreateCategoryGroupRequest defines the payload for creating a group.
type CreateCategoryGroupRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=income deduction expense fund"`
}

// UpdateCategoryGroupRequest defines partial updates to a group.
type UpdateCategoryGroupRequest struct {
	Name *string `json:"name"`
}

// CategoryGroupResponse defines the data returned for a category group.
type CategoryGroupResponse struct {
	GroupID   string `json:"groupID"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateAllDefaultsRequest maps category IDs to new default budget amounts.
type UpdateAllDefaultsRequest struct {
	Defaults map[string]string `json:"defaults" binding:"required"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		Type:          string(c.Type),
		GroupID:       c.GroupID,
		DefaultBudget: c.DefaultBudget,
		IsCustom:      c.IsCustom,
		SortOrder:     c.SortOrder,
	}
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(cats []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(cats))
	for i := range cats {
		responses[i] = ToCategoryResponse(&cats[i])
	}
	return responses
}

// ToCategoryGroupResponse converts a domain.CategoryGroup.
func ToCategoryGroupResponse(g *domain.CategoryGroup) CategoryGroupResponse {
	return CategoryGroupResponse{
		GroupID:   g.GroupID,
		Name:      g.Name,
		Type:      string(g.Type),
		SortOrder: g.SortOrder,
	}
}
