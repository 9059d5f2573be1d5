package domain

import "github.com/shopspring/decimal"

// CategoryType classifies a category for budgeting and ledger purposes.
type CategoryType string

const (
	CategoryIncome    CategoryType = "income"
	CategoryDeduction CategoryType = "deduction"
	CategoryExpense   CategoryType = "expense"
	CategoryFund      CategoryType = "fund"
)

// ValidCategoryType reports whether t is one of the known category types.
func ValidCategoryType(t CategoryType) bool {
	switch t {
	case CategoryIncome, CategoryDeduction, CategoryExpense, CategoryFund:
		return true
	}
	return false
}

// UncategorizedName is the sentinel category assigned to imported rows whose
// merchant matched no keyword.
const UncategorizedName = "Uncategorized"

// Category represents a spending or income bucket. A category of type fund has
// exactly one Fund sharing its name; that binding is maintained by the category
// and fund services.
type Category struct {
	CategoryID    string          `json:"categoryID"` // Primary Key (UUID)
	Name          string          `json:"name"`       // Unique
	Type          CategoryType    `json:"type"`
	GroupID       *string         `json:"groupID"` // Nullable FK -> category_groups.group_id
	DefaultBudget decimal.Decimal `json:"defaultBudget"`
	IsCustom      bool            `json:"isCustom"` // False for the seeded defaults
	SortOrder     int             `json:"sortOrder"`
	AuditFields
}

// CategoryGroup is a display grouping of categories (e.g. Housing, Food).
type CategoryGroup struct {
	GroupID   string       `json:"groupID"` // Primary Key (UUID)
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	SortOrder int          `json:"sortOrder"`
	AuditFields
}
