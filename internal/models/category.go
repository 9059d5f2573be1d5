package models

import "github.com/shopspring/decimal"

// Category represents a row of the categories table.
type Category struct {
	CategoryID    string          `db:"category_id"`
	Name          string          `db:"name"`
	Type          string          `db:"category_type"`
	GroupID       *string         `db:"group_id"` // Nullable
	DefaultBudget decimal.Decimal `db:"default_budget"`
	IsCustom      bool            `db:"is_custom"`
	SortOrder     int             `db:"sort_order"`
	AuditFields
}

// CategoryGroup represents a row of the category_groups table.
type CategoryGroup struct {
	GroupID   string `db:"group_id"`
	Name      string `db:"name"`
	Type      string `db:"group_type"`
	SortOrder int    `db:"sort_order"`
	AuditFields
}
