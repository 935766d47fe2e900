// Package category contains category management use cases, including the
// hierarchy validation shared by create, update and delete.
package category

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed category name length.
const MaxCategoryNameLength = 50

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validateName checks the trimmed name for presence and length.
func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			nil,
		)
	}
	if len(trimmed) > MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name exceeds %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return trimmed, nil
}

// validateColor checks the color against the #RRGGBB format. Empty is allowed
// and means "use the default".
func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be in #RRGGBB format",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return nil
}

// validateType checks the category type.
func validateType(categoryType entity.CategoryType) error {
	if categoryType != entity.CategoryTypeExpense && categoryType != entity.CategoryTypeIncome {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be expense or income",
			domainerror.ErrInvalidCategoryType,
		)
	}
	return nil
}

// inScope reports whether a category is visible to the user: their own or a
// seeded global default.
func inScope(category *entity.Category, userID uuid.UUID) bool {
	return category.IsGlobal() || category.OwnerID == userID
}

// resolveParent fetches the requested parent and runs the attachment checks
// that do not depend on what is being attached: the parent must exist in the
// user's scope, carry the same type as the child, and sit above the depth
// limit so the child still fits.
func resolveParent(ctx context.Context, repo adapter.CategoryRepository, userID uuid.UUID, parentID uuid.UUID, categoryType entity.CategoryType) (*entity.Category, error) {
	parent, err := repo.FindByID(ctx, parentID)
	if err != nil || !inScope(parent, userID) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeParentNotFound,
			"parent category not found",
			domainerror.ErrParentNotFound,
		)
	}

	if parent.Type != categoryType {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeTypeMismatch,
			"parent category has a different type",
			domainerror.ErrTypeMismatch,
		)
	}

	if parent.Depth >= entity.MaxCategoryDepth {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeDepthExceeded,
			fmt.Sprintf("parent already sits at the maximum depth of %d", entity.MaxCategoryDepth),
			domainerror.ErrDepthExceeded,
		)
	}

	return parent, nil
}

// checkNoCycle walks the parent chain upward from the candidate parent and
// fails if it reaches the category being moved. The chain is bounded by the
// depth limit, so the walk visits at most three nodes.
func checkNoCycle(ctx context.Context, repo adapter.CategoryRepository, movedID uuid.UUID, parent *entity.Category) error {
	for current := parent; current != nil; {
		if current.ID == movedID {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCircularReference,
				"category cannot be moved under its own descendant",
				domainerror.ErrCircularReference,
			)
		}
		if current.ParentID == nil {
			break
		}
		next, err := repo.FindByID(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("failed to walk parent chain: %w", err)
		}
		current = next
	}
	return nil
}

// checkDuplicateName fails if another category with the same name (compared
// case-insensitively) and type already exists in the owner scope.
func checkDuplicateName(ctx context.Context, repo adapter.CategoryRepository, name string, categoryType entity.CategoryType, ownerType entity.OwnerType, ownerID uuid.UUID) error {
	exists, err := repo.ExistsByNameInScope(ctx, name, categoryType, ownerType, ownerID)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeDuplicateName,
			"a category with this name already exists",
			domainerror.ErrDuplicateName,
		)
	}
	return nil
}
