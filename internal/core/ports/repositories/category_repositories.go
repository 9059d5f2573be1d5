package repositories

import (
	"context"

	"github.com/jmwalsh/budgetbook/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoryByName retrieves a category by its unique name.
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)

	// ListCategories retrieves all categories ordered by sort order.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// FindOrCreateCategory returns the category with the given name, creating
	// it with the given type when absent.
	FindOrCreateCategory(ctx context.Context, name string, categoryType domain.CategoryType) (*domain.Category, error)

	// UpdateCategory persists changes to an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category.
	DeleteCategory(ctx context.Context, categoryID string) error

	// ReorderCategories rewrites sort order following the given ID sequence.
	ReorderCategories(ctx context.Context, orderedIDs []string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// CategoryGroupRepositoryFacade defines operations for category group data
type CategoryGroupRepositoryFacade interface {
	FindGroupByID(ctx context.Context, groupID string) (*domain.CategoryGroup, error)
	FindGroupByName(ctx context.Context, name string, groupType domain.CategoryType) (*domain.CategoryGroup, error)
	ListGroups(ctx context.Context) ([]domain.CategoryGroup, error)
	SaveGroup(ctx context.Context, group domain.CategoryGroup) error
	UpdateGroup(ctx context.Context, group domain.CategoryGroup) error
	DeleteGroup(ctx context.Context, groupID string) error
	ReorderGroups(ctx context.Context, orderedIDs []string) error
}
