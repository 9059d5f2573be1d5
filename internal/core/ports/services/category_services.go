package services

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
	"github.com/jmwalsh/budgetbook/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories in sort order.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data. Creating or
// deleting a category of type fund keeps the 1:1 bound Fund in sync.
type CategoryWriterSvc interface {
	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory applies partial updates to a category.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category; a fund category also removes its fund.
	DeleteCategory(ctx context.Context, categoryID string) error

	// ReorderCategories rewrites category sort order.
	ReorderCategories(ctx context.Context, orderedIDs []string) error

	// UpdateAllDefaults overwrites default budgets in bulk.
	UpdateAllDefaults(ctx context.Context, defaults map[string]string) error

	// SeedDefaults creates the built-in category set when the table is empty.
	SeedDefaults(ctx context.Context) error
}

// CategoryGroupSvc defines category group operations
type CategoryGroupSvc interface {
	ListGroups(ctx context.Context) ([]domain.CategoryGroup, error)
	CreateGroup(ctx context.Context, req dto.CreateCategoryGroupRequest) (*domain.CategoryGroup, error)
	UpdateGroup(ctx context.Context, groupID string, req dto.UpdateCategoryGroupRequest) (*domain.CategoryGroup, error)
	DeleteGroup(ctx context.Context, groupID string) error
	ReorderGroups(ctx context.Context, orderedIDs []string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
	CategoryGroupSvc
}
