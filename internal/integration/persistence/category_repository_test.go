package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fianzas-manager/backend/internal/domain/entity"
	domainerror "github.com/fianzas-manager/backend/internal/domain/error"
	"github.com/fianzas-manager/backend/internal/integration/persistence/model"
)

// openTestDB opens a private in-memory database with the same gorm
// configuration the application uses, error translation included.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.CategoryModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newOwnedCategory(name string, ownerID uuid.UUID) *entity.Category {
	return entity.NewCategory(
		name,
		entity.DefaultCategoryColor,
		entity.DefaultCategoryIcon,
		entity.OwnerTypeUser,
		ownerID,
		entity.CategoryTypeExpense,
		nil,
		0,
	)
}

func TestCategoryRepository_Create_DuplicateNameLosesAtIndex(t *testing.T) {
	repo := NewCategoryRepository(openTestDB(t))
	ownerID := uuid.New()
	ctx := context.Background()

	if err := repo.Create(ctx, newOwnedCategory("Salario", ownerID)); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// The unique index compares name_lower, so a case variant in the same
	// scope must lose with the duplicate-name domain error, not a raw
	// driver error.
	err := repo.Create(ctx, newOwnedCategory("salario", ownerID))
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CategoryError, got %v", err)
	}
	if catErr.Code != domainerror.ErrCodeDuplicateName {
		t.Errorf("code = %s, want %s", catErr.Code, domainerror.ErrCodeDuplicateName)
	}
}

func TestCategoryRepository_Create_SameNameDifferentScope(t *testing.T) {
	repo := NewCategoryRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newOwnedCategory("Hogar", uuid.New())); err != nil {
		t.Fatalf("first owner create: %v", err)
	}
	if err := repo.Create(ctx, newOwnedCategory("Hogar", uuid.New())); err != nil {
		t.Errorf("second owner create: %v", err)
	}
}

func TestCategoryRepository_Update_DuplicateNameLosesAtIndex(t *testing.T) {
	repo := NewCategoryRepository(openTestDB(t))
	ownerID := uuid.New()
	ctx := context.Background()

	if err := repo.Create(ctx, newOwnedCategory("Hogar", ownerID)); err != nil {
		t.Fatalf("create: %v", err)
	}
	renamed := newOwnedCategory("Transporte", ownerID)
	if err := repo.Create(ctx, renamed); err != nil {
		t.Fatalf("create: %v", err)
	}

	renamed.Name = "hogar"
	err := repo.Update(ctx, renamed)
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeDuplicateName {
		t.Fatalf("expected duplicate-name error, got %v", err)
	}
}
