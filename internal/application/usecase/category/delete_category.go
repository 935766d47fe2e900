package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Message string
}

// DeleteCategoryUseCase handles category deletion.
type DeleteCategoryUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute deletes a category. Deletion is refused while the category still
// has children or is referenced by transactions, mirroring the foreign key
// constraints in the database.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
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
			"global categories cannot be deleted",
			domainerror.ErrGlobalCategoryReadOnly,
		)
	}

	hasChildren, err := uc.categoryRepo.HasChildren(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for child categories: %w", err)
	}
	if hasChildren {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeHasChildren,
			"category still has child categories",
			domainerror.ErrHasChildren,
		)
	}

	hasTransactions, err := uc.transactionRepo.ExistsByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for transactions: %w", err)
	}
	if hasTransactions {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeHasTransactions,
			"category is still referenced by transactions",
			domainerror.ErrHasTransactions,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return &DeleteCategoryOutput{Message: "Category deleted"}, nil
}
