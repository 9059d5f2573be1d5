package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/core/domain"
	portsrepo "github.com/jmwalsh/budgetbook/internal/core/ports/repositories"
	portssvc "github.com/jmwalsh/budgetbook/internal/core/ports/services"
	"github.com/jmwalsh/budgetbook/internal/dto"
	"github.com/jmwalsh/budgetbook/internal/middleware"
)

// defaultCategories is the built-in set installed on an empty database. The
// group name resolves to a CategoryGroup of the same category type, created as
// part of seeding.
var defaultCategories = []struct {
	name      string
	ctype     domain.CategoryType
	groupName string
}{
	{"Gross Salary", domain.CategoryIncome, "Income"},
	{"401k Deduction", domain.CategoryDeduction, "Deductions"},
	{"Health Insurance Deduction", domain.CategoryDeduction, "Deductions"},
	{"Federal Tax Deduction", domain.CategoryDeduction, "Deductions"},
	{"State Tax Deduction", domain.CategoryDeduction, "Deductions"},
	{"Social Security Deduction", domain.CategoryDeduction, "Deductions"},
	{"Medicare Deduction", domain.CategoryDeduction, "Deductions"},
	{"Rent/Mortgage", domain.CategoryExpense, "Housing"},
	{"Groceries", domain.CategoryExpense, "Food"},
	{"Gas", domain.CategoryExpense, "Transportation"},
	{"Utilities", domain.CategoryExpense, "Housing"},
	{"Internet", domain.CategoryExpense, "Housing"},
	{"Phone", domain.CategoryExpense, "Personal"},
	{domain.UncategorizedName, domain.CategoryExpense, "Other"},
}

// categoryService manages categories and their display groups. Category names
// are globally unique; a category of type fund is kept 1:1 with a Fund of the
// same name.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
	groupRepo    portsrepo.CategoryGroupRepositoryFacade
	fundRepo     portsrepo.FundRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	now          func() time.Time
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(
	categoryRepo portsrepo.CategoryRepositoryFacade,
	groupRepo portsrepo.CategoryGroupRepositoryFacade,
	fundRepo portsrepo.FundRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo: categoryRepo,
		groupRepo:    groupRepo,
		fundRepo:     fundRepo,
		txnRepo:      txnRepo,
		now:          time.Now,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.ListCategories(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	ctype := domain.CategoryType(req.Type)
	if !domain.ValidCategoryType(ctype) {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, req.Type)
	}
	if existing, err := s.categoryRepo.FindCategoryByName(ctx, name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	var groupID *string
	if req.GroupName != "" {
		group, err := s.groupRepo.FindGroupByName(ctx, req.GroupName, ctype)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: group %q does not exist", apperrors.ErrValidation, req.GroupName)
			}
			return nil, err
		}
		groupID = &group.GroupID
	}

	budget := decimal.Zero
	if req.DefaultBudget != nil {
		if err := validateAmount(*req.DefaultBudget); err != nil {
			return nil, err
		}
		budget = *req.DefaultBudget
	}

	now := s.now()
	category := domain.Category{
		CategoryID:    uuid.NewString(),
		Name:          name,
		Type:          ctype,
		GroupID:       groupID,
		DefaultBudget: budget,
		IsCustom:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}

	// A fund category always has a fund record of the same name.
	if ctype == domain.CategoryFund {
		fund := domain.Fund{
			FundID:              uuid.NewString(),
			Name:                name,
			CurrentBalance:      decimal.Zero,
			MonthlyContribution: budget,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := s.fundRepo.SaveFund(ctx, fund); err != nil {
			return nil, fmt.Errorf("failed to create fund for category %q: %w", name, err)
		}
	}

	middleware.GetLoggerFromCtx(ctx).Info("category created", "categoryID", category.CategoryID, "name", name, "type", ctype)
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
		}
		if name != category.Name {
			if existing, err := s.categoryRepo.FindCategoryByName(ctx, name); err == nil && existing != nil {
				return nil, fmt.Errorf("%w: category %q already exists", apperrors.ErrDuplicate, name)
			} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, err
			}
		}
		category.Name = name
	}
	if req.GroupName != nil {
		if *req.GroupName == "" {
			category.GroupID = nil
		} else {
			group, err := s.groupRepo.FindGroupByName(ctx, *req.GroupName, category.Type)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: group %q does not exist", apperrors.ErrValidation, *req.GroupName)
				}
				return nil, err
			}
			category.GroupID = &group.GroupID
		}
	}
	if req.DefaultBudget != nil {
		if err := validateAmount(*req.DefaultBudget); err != nil {
			return nil, err
		}
		category.DefaultBudget = *req.DefaultBudget
	}
	category.LastUpdatedAt = s.now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransactionsByCategory(ctx, categoryID); err != nil {
		return err
	}
	if category.Type == domain.CategoryFund {
		fund, err := s.fundRepo.FindFundByName(ctx, category.Name)
		if err == nil && fund != nil {
			if err := s.fundRepo.DeleteFund(ctx, fund.FundID); err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}

	middleware.GetLoggerFromCtx(ctx).Info("category deleted", "categoryID", categoryID, "name", category.Name)
	return nil
}

func (s *categoryService) ReorderCategories(ctx context.Context, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: ordered IDs are required", apperrors.ErrValidation)
	}
	return s.categoryRepo.ReorderCategories(ctx, orderedIDs)
}

func (s *categoryService) UpdateAllDefaults(ctx context.Context, defaults map[string]string) error {
	for categoryID, raw := range defaults {
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.Sign() < 0 {
			return fmt.Errorf("%w: invalid amount %q for category %s", apperrors.ErrValidation, raw, categoryID)
		}
		category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}
		category.DefaultBudget = amount
		category.LastUpdatedAt = s.now()
		if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
			return err
		}
	}
	return nil
}

// SeedDefaults installs the built-in categories and their groups on an empty
// database. A database that already holds categories is left untouched.
func (s *categoryService) SeedDefaults(ctx context.Context) error {
	existing, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := s.now()
	groupIDs := map[string]*string{}
	sortOrder := 0
	for i, def := range defaultCategories {
		key := def.groupName + "/" + string(def.ctype)
		groupID, seen := groupIDs[key]
		if !seen {
			group := domain.CategoryGroup{
				GroupID:   uuid.NewString(),
				Name:      def.groupName,
				Type:      def.ctype,
				SortOrder: sortOrder,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					LastUpdatedAt: now,
				},
			}
			if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
				return fmt.Errorf("failed to seed group %q: %w", def.groupName, err)
			}
			sortOrder++
			groupID = &group.GroupID
			groupIDs[key] = groupID
		}

		category := domain.Category{
			CategoryID: uuid.NewString(),
			Name:       def.name,
			Type:       def.ctype,
			GroupID:    groupID,
			IsCustom:   false,
			SortOrder:  i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", def.name, err)
		}
	}

	middleware.GetLoggerFromCtx(ctx).Info("seeded default categories", "count", len(defaultCategories))
	return nil
}

func (s *categoryService) ListGroups(ctx context.Context) ([]domain.CategoryGroup, error) {
	return s.groupRepo.ListGroups(ctx)
}

func (s *categoryService) CreateGroup(ctx context.Context, req dto.CreateCategoryGroupRequest) (*domain.CategoryGroup, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", apperrors.ErrValidation)
	}
	ctype := domain.CategoryType(req.Type)
	if !domain.ValidCategoryType(ctype) {
		return nil, fmt.Errorf("%w: unknown category type %q", apperrors.ErrValidation, req.Type)
	}
	if existing, err := s.groupRepo.FindGroupByName(ctx, name, ctype); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: group %q already exists", apperrors.ErrDuplicate, name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := s.now()
	group := domain.CategoryGroup{
		GroupID: uuid.NewString(),
		Name:    name,
		Type:    ctype,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *categoryService) UpdateGroup(ctx context.Context, groupID string, req dto.UpdateCategoryGroupRequest) (*domain.CategoryGroup, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: group name cannot be empty", apperrors.ErrValidation)
		}
		if existing, err := s.groupRepo.FindGroupByName(ctx, name, group.Type); err == nil && existing != nil && existing.GroupID != groupID {
			return nil, fmt.Errorf("%w: group %q already exists", apperrors.ErrDuplicate, name)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		group.Name = name
	}
	group.LastUpdatedAt = s.now()

	if err := s.groupRepo.UpdateGroup(ctx, *group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *categoryService) DeleteGroup(ctx context.Context, groupID string) error {
	if _, err := s.groupRepo.FindGroupByID(ctx, groupID); err != nil {
		return err
	}
	return s.groupRepo.DeleteGroup(ctx, groupID)
}

func (s *categoryService) ReorderGroups(ctx context.Context, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: ordered IDs are required", apperrors.ErrValidation)
	}
	return s.groupRepo.ReorderGroups(ctx, orderedIDs)
}
