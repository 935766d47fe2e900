// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// "In scope" for a user means the user's own categories plus the seeded
// global defaults.
type CategoryRepository interface {
	// Create creates a new category in the database. The unique index on
	// (owner_type, owner_id, type, lower(name)) is the final arbiter for
	// duplicate names under concurrent creates.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindInScope retrieves the categories visible to a user: their own plus
	// the global defaults, optionally filtered by type.
	FindInScope(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByNameInScope checks case-insensitively whether a category with
	// the given name and type already exists in the owner scope.
	ExistsByNameInScope(ctx context.Context, name string, categoryType entity.CategoryType, ownerType entity.OwnerType, ownerID uuid.UUID) (bool, error)

	// HasChildren checks whether any category lists the given one as parent.
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)

	// FindChildren retrieves the direct children of a category.
	FindChildren(ctx context.Context, id uuid.UUID) ([]*entity.Category, error)

	// SubtreeHeight returns the height of the subtree rooted at the given
	// category: 0 for a leaf, 1 if it has children, 2 if grandchildren.
	SubtreeHeight(ctx context.Context, id uuid.UUID) (int, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// UpdateSubtreeDepths rewrites the cached depth of every descendant after
	// a re-parent shifted the subtree by delta levels.
	UpdateSubtreeDepths(ctx context.Context, rootID uuid.UUID, delta int) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
