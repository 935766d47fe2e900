package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category updates. Nil fields
// are left untouched. Reparent distinguishes "do not move" from "move to
// root": when Reparent is true, a nil NewParentID detaches the category.
type UpdateCategoryInput struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Name        *string
	Color       *string
	Icon        *string
	Reparent    bool
	NewParentID *uuid.UUID
}

// UpdateCategoryOutput represents the output of category updates.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles renaming, recoloring and re-parenting.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute applies the requested changes. Re-parenting rejects cycles by
// walking from the new parent to the root, and rejects moves that would push
// the deepest descendant past the depth limit.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || !inScope(category, input.UserID) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if category.IsGlobal() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeGlobalReadOnly,
			"global categories cannot be modified",
			domainerror.ErrGlobalCategoryReadOnly,
		)
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(name, category.Name) {
			if err := checkDuplicateName(ctx, uc.categoryRepo, name, category.Type, category.OwnerType, category.OwnerID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}

	if input.Color != nil {
		if err := validateColor(*input.Color); err != nil {
			return nil, err
		}
		category.Color = *input.Color
	}

	if input.Icon != nil {
		category.Icon = *input.Icon
	}

	if input.Reparent {
		newDepth, err := uc.resolveNewDepth(ctx, category, input.NewParentID)
		if err != nil {
			return nil, err
		}
		delta := newDepth - category.Depth
		category.ParentID = input.NewParentID
		category.Depth = newDepth

		if delta != 0 {
			if err := uc.categoryRepo.UpdateSubtreeDepths(ctx, category.ID, delta); err != nil {
				return nil, fmt.Errorf("failed to update subtree depths: %w", err)
			}
		}
	}

	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}

// resolveNewDepth runs the re-parent checks and returns the depth the
// category will occupy after the move.
func (uc *UpdateCategoryUseCase) resolveNewDepth(ctx context.Context, category *entity.Category, newParentID *uuid.UUID) (int, error) {
	if newParentID == nil {
		return 0, nil
	}

	parent, err := resolveParent(ctx, uc.categoryRepo, category.OwnerID, *newParentID, category.Type)
	if err != nil {
		return 0, err
	}

	if err := checkNoCycle(ctx, uc.categoryRepo, category.ID, parent); err != nil {
		return 0, err
	}

	newDepth := parent.Depth + 1
	height, err := uc.categoryRepo.SubtreeHeight(ctx, category.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to measure subtree height: %w", err)
	}
	if newDepth+height > entity.MaxCategoryDepth {
		return 0, domainerror.NewCategoryError(
			domainerror.ErrCodeDepthExceeded,
			"moving the category would push its descendants past the depth limit",
			domainerror.ErrDepthExceeded,
		)
	}

	return newDepth, nil
}
