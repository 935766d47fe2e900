// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
	"github.com/fianzas-manager/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database. A unique index violation on
// the scope+name index surfaces as ErrDuplicateName so concurrent creates of
// the same name lose cleanly.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeDuplicateName,
				"a category with this name already exists",
				domainerror.ErrDuplicateName,
			)
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindInScope retrieves the categories visible to a user: their own plus the
// global defaults, optionally filtered by type.
func (r *categoryRepository) FindInScope(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).
		Where("(owner_type = ? AND owner_id = ?) OR owner_type = ?",
			string(entity.OwnerTypeUser), userID, string(entity.OwnerTypeGlobal))
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	result := query.Order("depth ASC, name_lower ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, categoryModels[i].ToEntity())
	}
	return categories, nil
}

// ExistsByNameInScope checks case-insensitively whether a category with the
// given name and type already exists in the owner scope.
func (r *categoryRepository) ExistsByNameInScope(ctx context.Context, name string, categoryType entity.CategoryType, ownerType entity.OwnerType, ownerID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("owner_type = ? AND owner_id = ? AND type = ? AND name_lower = ?",
			string(ownerType), ownerID, string(categoryType), strings.ToLower(name)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// HasChildren checks whether any category lists the given one as parent.
func (r *categoryRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("parent_id = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// FindChildren retrieves the direct children of a category.
func (r *categoryRepository) FindChildren(ctx context.Context, id uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("parent_id = ?", id).
		Order("name_lower ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	children := make([]*entity.Category, 0, len(categoryModels))
	for i := range categoryModels {
		children = append(children, categoryModels[i].ToEntity())
	}
	return children, nil
}

// SubtreeHeight returns the height of the subtree rooted at the given
// category. The loop descends level by level; the depth limit bounds it.
func (r *categoryRepository) SubtreeHeight(ctx context.Context, id uuid.UUID) (int, error) {
	height := 0
	frontier := []uuid.UUID{id}
	for len(frontier) > 0 {
		var childIDs []uuid.UUID
		result := r.db.WithContext(ctx).
			Model(&model.CategoryModel{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &childIDs)
		if result.Error != nil {
			return 0, result.Error
		}
		if len(childIDs) == 0 {
			break
		}
		height++
		frontier = childIDs
	}
	return height, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Save(categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeDuplicateName,
				"a category with this name already exists",
				domainerror.ErrDuplicateName,
			)
		}
		return result.Error
	}
	return nil
}

// UpdateSubtreeDepths rewrites the cached depth of every descendant after a
// re-parent shifted the subtree by delta levels.
func (r *categoryRepository) UpdateSubtreeDepths(ctx context.Context, rootID uuid.UUID, delta int) error {
	frontier := []uuid.UUID{rootID}
	for len(frontier) > 0 {
		var childIDs []uuid.UUID
		result := r.db.WithContext(ctx).
			Model(&model.CategoryModel{}).
			Where("parent_id IN ?", frontier).
			Pluck("id", &childIDs)
		if result.Error != nil {
			return result.Error
		}
		if len(childIDs) == 0 {
			return nil
		}

		result = r.db.WithContext(ctx).
			Model(&model.CategoryModel{}).
			Where("id IN ?", childIDs).
			Update("depth", gorm.Expr("depth + ?", delta))
		if result.Error != nil {
			return result.Error
		}
		frontier = childIDs
	}
	return nil
}

// Delete removes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
