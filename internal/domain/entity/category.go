// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType represents the ownership scope of a category.
type OwnerType string

const (
	// OwnerTypeUser marks a category created and owned by a single user.
	OwnerTypeUser OwnerType = "user"
	// OwnerTypeGlobal marks a seeded default category shared by all users.
	OwnerTypeGlobal OwnerType = "global"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// MaxCategoryDepth is the deepest allowed position in the category tree.
// Roots sit at depth 0, so the tree holds at most three levels.
const MaxCategoryDepth = 2

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category. Categories form a forest via
// parent pointers; Depth caches the distance to the root so hierarchy checks
// never walk more than one parent chain.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	OwnerType OwnerType
	OwnerID   uuid.UUID // uuid.Nil for global categories
	Type      CategoryType
	ParentID  *uuid.UUID
	Depth     int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
// Defaulting of color and icon is applied in the application layer before
// calling this constructor; depth is assigned by the hierarchy validator.
func NewCategory(name, color, icon string, ownerType OwnerType, ownerID uuid.UUID, categoryType CategoryType, parentID *uuid.UUID, depth int) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		OwnerType: ownerType,
		OwnerID:   ownerID,
		Type:      categoryType,
		ParentID:  parentID,
		Depth:     depth,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsGlobal reports whether the category is a shared seeded default.
func (c *Category) IsGlobal() bool {
	return c.OwnerType == OwnerTypeGlobal
}
