package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/fianzas-manager/backend/internal/application/adapter"
	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
)

// fakeCategoryRepo is an in-memory CategoryRepository for unit tests.
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return category, nil
}

func (r *fakeCategoryRepo) FindInScope(_ context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range r.categories {
		if !c.IsGlobal() && c.OwnerID != userID {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeCategoryRepo) ExistsByNameInScope(_ context.Context, name string, categoryType entity.CategoryType, ownerType entity.OwnerType, ownerID uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.OwnerType == ownerType && c.OwnerID == ownerID && c.Type == categoryType && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) HasChildren(_ context.Context, id uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) FindChildren(_ context.Context, id uuid.UUID) ([]*entity.Category, error) {
	var children []*entity.Category
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			children = append(children, c)
		}
	}
	return children, nil
}

func (r *fakeCategoryRepo) SubtreeHeight(_ context.Context, id uuid.UUID) (int, error) {
	height := 0
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			childHeight, _ := r.SubtreeHeight(context.Background(), c.ID)
			if childHeight+1 > height {
				height = childHeight + 1
			}
		}
	}
	return height, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) UpdateSubtreeDepths(_ context.Context, rootID uuid.UUID, delta int) error {
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == rootID {
			c.Depth += delta
			if err := r.UpdateSubtreeDepths(context.Background(), c.ID, delta); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

// fakeTransactionRepo only answers ExistsByCategory; the rest of the
// interface is never reached by category use cases.
type fakeTransactionRepo struct {
	adapter.TransactionRepository
	referenced map[uuid.UUID]bool
}

func (r *fakeTransactionRepo) ExistsByCategory(_ context.Context, categoryID uuid.UUID) (bool, error) {
	return r.referenced[categoryID], nil
}

func seedCategory(repo *fakeCategoryRepo, name string, categoryType entity.CategoryType, ownerType entity.OwnerType, ownerID uuid.UUID, parentID *uuid.UUID, depth int) *entity.Category {
	c := entity.NewCategory(name, entity.DefaultCategoryColor, entity.DefaultCategoryIcon, ownerType, ownerID, categoryType, parentID, depth)
	repo.categories[c.ID] = c
	return c
}

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates root category with defaults", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		out, err := uc.Execute(ctx, CreateCategoryInput{
			UserID: userID,
			Name:   "Groceries",
			Type:   entity.CategoryTypeExpense,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Depth != 0 {
			t.Errorf("expected depth 0, got %d", out.Category.Depth)
		}
		if out.Category.Color != entity.DefaultCategoryColor {
			t.Errorf("expected default color, got %s", out.Category.Color)
		}
		if out.Category.Icon != entity.DefaultCategoryIcon {
			t.Errorf("expected default icon, got %s", out.Category.Icon)
		}
	})

	t.Run("rejects duplicate name case-insensitively", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		seedCategory(repo, "Salario", entity.CategoryTypeIncome, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID: userID,
			Name:   "salario",
			Type:   entity.CategoryTypeIncome,
		})
		if !errors.Is(err, domainerror.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("allows same name for different type", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		seedCategory(repo, "Extras", entity.CategoryTypeIncome, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID: userID,
			Name:   "Extras",
			Type:   entity.CategoryTypeExpense,
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects unknown parent", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)
		missing := uuid.New()

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID:   userID,
			Name:     "Orphan",
			Type:     entity.CategoryTypeExpense,
			ParentID: &missing,
		})
		if !errors.Is(err, domainerror.ErrParentNotFound) {
			t.Errorf("expected ErrParentNotFound, got %v", err)
		}
	})

	t.Run("rejects parent owned by another user", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		other := seedCategory(repo, "Foreign", entity.CategoryTypeExpense, entity.OwnerTypeUser, uuid.New(), nil, 0)
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID:   userID,
			Name:     "Child",
			Type:     entity.CategoryTypeExpense,
			ParentID: &other.ID,
		})
		if !errors.Is(err, domainerror.ErrParentNotFound) {
			t.Errorf("expected ErrParentNotFound, got %v", err)
		}
	})

	t.Run("rejects type mismatch with parent", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		parent := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID:   userID,
			Name:     "Sueldo",
			Type:     entity.CategoryTypeIncome,
			ParentID: &parent.ID,
		})
		if !errors.Is(err, domainerror.ErrTypeMismatch) {
			t.Errorf("expected ErrTypeMismatch, got %v", err)
		}
	})

	t.Run("child depth is parent depth plus one", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		parent := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewCreateCategoryUseCase(repo)

		out, err := uc.Execute(ctx, CreateCategoryInput{
			UserID:   userID,
			Name:     "Servicios",
			Type:     entity.CategoryTypeExpense,
			ParentID: &parent.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Depth != 1 {
			t.Errorf("expected depth 1, got %d", out.Category.Depth)
		}
	})

	t.Run("rejects child under parent at maximum depth", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		root := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		child := seedCategory(repo, "Servicios", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &root.ID, 1)
		grandchild := seedCategory(repo, "Luz", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &child.ID, 2)
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID:   userID,
			Name:     "Medidor",
			Type:     entity.CategoryTypeExpense,
			ParentID: &grandchild.ID,
		})
		if !errors.Is(err, domainerror.ErrDepthExceeded) {
			t.Errorf("expected ErrDepthExceeded, got %v", err)
		}
	})

	t.Run("allows child under global parent", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		global := seedCategory(repo, "Comida", entity.CategoryTypeExpense, entity.OwnerTypeGlobal, uuid.Nil, nil, 0)
		uc := NewCreateCategoryUseCase(repo)

		out, err := uc.Execute(ctx, CreateCategoryInput{
			UserID:   userID,
			Name:     "Restaurantes",
			Type:     entity.CategoryTypeExpense,
			ParentID: &global.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Depth != 1 {
			t.Errorf("expected depth 1, got %d", out.Category.Depth)
		}
	})

	t.Run("rejects invalid color", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID: userID,
			Name:   "Viajes",
			Color:  "blue",
			Type:   entity.CategoryTypeExpense,
		})
		if !errors.Is(err, domainerror.ErrInvalidColorFormat) {
			t.Errorf("expected ErrInvalidColorFormat, got %v", err)
		}
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID: userID,
			Name:   "Viajes",
			Type:   entity.CategoryType("transfer"),
		})
		if !errors.Is(err, domainerror.ErrInvalidCategoryType) {
			t.Errorf("expected ErrInvalidCategoryType, got %v", err)
		}
	})

	t.Run("rejects name over the length limit", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		uc := NewCreateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, CreateCategoryInput{
			UserID: userID,
			Name:   strings.Repeat("x", MaxCategoryNameLength+1),
			Type:   entity.CategoryTypeExpense,
		})
		if !errors.Is(err, domainerror.ErrCategoryNameTooLong) {
			t.Errorf("expected ErrCategoryNameTooLong, got %v", err)
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("renames category", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		c := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewUpdateCategoryUseCase(repo)

		name := "Casa"
		out, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:     userID,
			CategoryID: c.ID,
			Name:       &name,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Casa" {
			t.Errorf("expected renamed category, got %s", out.Category.Name)
		}
	})

	t.Run("allows rename that only changes case", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		c := seedCategory(repo, "hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewUpdateCategoryUseCase(repo)

		name := "Hogar"
		out, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:     userID,
			CategoryID: c.ID,
			Name:       &name,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Hogar" {
			t.Errorf("expected Hogar, got %s", out.Category.Name)
		}
	})

	t.Run("rejects rename to existing name", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		seedCategory(repo, "Comida", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		c := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewUpdateCategoryUseCase(repo)

		name := "comida"
		_, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:     userID,
			CategoryID: c.ID,
			Name:       &name,
		})
		if !errors.Is(err, domainerror.ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("rejects modifying a global category", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		global := seedCategory(repo, "Comida", entity.CategoryTypeExpense, entity.OwnerTypeGlobal, uuid.Nil, nil, 0)
		uc := NewUpdateCategoryUseCase(repo)

		name := "Alimentos"
		_, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:     userID,
			CategoryID: global.ID,
			Name:       &name,
		})
		if !errors.Is(err, domainerror.ErrGlobalCategoryReadOnly) {
			t.Errorf("expected ErrGlobalCategoryReadOnly, got %v", err)
		}
	})

	t.Run("reparent rejects circular reference", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		root := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		child := seedCategory(repo, "Servicios", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &root.ID, 1)
		uc := NewUpdateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:      userID,
			CategoryID:  root.ID,
			Reparent:    true,
			NewParentID: &child.ID,
		})
		if !errors.Is(err, domainerror.ErrCircularReference) {
			t.Errorf("expected ErrCircularReference, got %v", err)
		}
	})

	t.Run("reparent rejects becoming own parent", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		c := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewUpdateCategoryUseCase(repo)

		_, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:      userID,
			CategoryID:  c.ID,
			Reparent:    true,
			NewParentID: &c.ID,
		})
		if !errors.Is(err, domainerror.ErrCircularReference) {
			t.Errorf("expected ErrCircularReference, got %v", err)
		}
	})

	t.Run("reparent rejects move that sinks subtree too deep", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		rootA := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		seedCategory(repo, "Servicios", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &rootA.ID, 1)
		rootB := seedCategory(repo, "Transporte", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		childB := seedCategory(repo, "Auto", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &rootB.ID, 1)
		uc := NewUpdateCategoryUseCase(repo)

		// rootA carries a child, so under childB its subtree would reach depth 3.
		_, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:      userID,
			CategoryID:  rootA.ID,
			Reparent:    true,
			NewParentID: &childB.ID,
		})
		if !errors.Is(err, domainerror.ErrDepthExceeded) {
			t.Errorf("expected ErrDepthExceeded, got %v", err)
		}
	})

	t.Run("reparent updates descendant depths", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		rootA := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		child := seedCategory(repo, "Servicios", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &rootA.ID, 1)
		rootB := seedCategory(repo, "Transporte", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewUpdateCategoryUseCase(repo)

		out, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:      userID,
			CategoryID:  rootA.ID,
			Reparent:    true,
			NewParentID: &rootB.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Depth != 1 {
			t.Errorf("expected depth 1 after move, got %d", out.Category.Depth)
		}
		if repo.categories[child.ID].Depth != 2 {
			t.Errorf("expected descendant depth 2, got %d", repo.categories[child.ID].Depth)
		}
	})

	t.Run("reparent to root resets depths", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		root := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		child := seedCategory(repo, "Servicios", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &root.ID, 1)
		grandchild := seedCategory(repo, "Luz", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &child.ID, 2)
		uc := NewUpdateCategoryUseCase(repo)

		out, err := uc.Execute(ctx, UpdateCategoryInput{
			UserID:     userID,
			CategoryID: child.ID,
			Reparent:   true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Depth != 0 {
			t.Errorf("expected depth 0 after detach, got %d", out.Category.Depth)
		}
		if repo.categories[grandchild.ID].Depth != 1 {
			t.Errorf("expected grandchild depth 1, got %d", repo.categories[grandchild.ID].Depth)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deletes leaf category", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		c := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewDeleteCategoryUseCase(repo, &fakeTransactionRepo{referenced: map[uuid.UUID]bool{}})

		if _, err := uc.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: c.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := repo.categories[c.ID]; ok {
			t.Error("expected category to be removed")
		}
	})

	t.Run("rejects category with children", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		root := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		seedCategory(repo, "Servicios", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, &root.ID, 1)
		uc := NewDeleteCategoryUseCase(repo, &fakeTransactionRepo{referenced: map[uuid.UUID]bool{}})

		_, err := uc.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: root.ID})
		if !errors.Is(err, domainerror.ErrHasChildren) {
			t.Errorf("expected ErrHasChildren, got %v", err)
		}
	})

	t.Run("rejects category referenced by transactions", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		c := seedCategory(repo, "Hogar", entity.CategoryTypeExpense, entity.OwnerTypeUser, userID, nil, 0)
		uc := NewDeleteCategoryUseCase(repo, &fakeTransactionRepo{referenced: map[uuid.UUID]bool{c.ID: true}})

		_, err := uc.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: c.ID})
		if !errors.Is(err, domainerror.ErrHasTransactions) {
			t.Errorf("expected ErrHasTransactions, got %v", err)
		}
	})

	t.Run("rejects deleting a global category", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		global := seedCategory(repo, "Comida", entity.CategoryTypeExpense, entity.OwnerTypeGlobal, uuid.Nil, nil, 0)
		uc := NewDeleteCategoryUseCase(repo, &fakeTransactionRepo{referenced: map[uuid.UUID]bool{}})

		_, err := uc.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: global.ID})
		if !errors.Is(err, domainerror.ErrGlobalCategoryReadOnly) {
			t.Errorf("expected ErrGlobalCategoryReadOnly, got %v", err)
		}
	})

	t.Run("rejects category owned by another user", func(t *testing.T) {
		repo := newFakeCategoryRepo()
		foreign := seedCategory(repo, "Ajeno", entity.CategoryTypeExpense, entity.OwnerTypeUser, uuid.New(), nil, 0)
		uc := NewDeleteCategoryUseCase(repo, &fakeTransactionRepo{referenced: map[uuid.UUID]bool{}})

		_, err := uc.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: foreign.ID})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}
