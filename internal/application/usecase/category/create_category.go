package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID   uuid.UUID
	Name     string
	Color    string
	Icon     string
	Type     entity.CategoryType
	ParentID *uuid.UUID
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute validates and creates a category. A parent, when given, must exist
// in the user's scope, share the child's type, and leave room under the depth
// limit; the new category's depth becomes the parent's plus one.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateColor(input.Color); err != nil {
		return nil, err
	}

	if err := checkDuplicateName(ctx, uc.categoryRepo, name, input.Type, entity.OwnerTypeUser, input.UserID); err != nil {
		return nil, err
	}

	depth := 0
	if input.ParentID != nil {
		parent, err := resolveParent(ctx, uc.categoryRepo, input.UserID, *input.ParentID, input.Type)
		if err != nil {
			return nil, err
		}
		depth = parent.Depth + 1
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	category := entity.NewCategory(name, color, icon, entity.OwnerTypeUser, input.UserID, input.Type, input.ParentID, depth)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: category}, nil
}
