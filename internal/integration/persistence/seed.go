// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fianzas-manager/backend/internal/domain/entity"
	"github.com/fianzas-manager/backend/internal/integration/persistence/model"
)

// defaultCategory describes one seeded global category.
type defaultCategory struct {
	Name  string
	Type  entity.CategoryType
	Color string
	Icon  string
}

var defaultCategories = []defaultCategory{
	{Name: "Comida", Type: entity.CategoryTypeExpense, Color: "#F59E0B", Icon: "utensils"},
	{Name: "Hogar", Type: entity.CategoryTypeExpense, Color: "#6366F1", Icon: "home"},
	{Name: "Transporte", Type: entity.CategoryTypeExpense, Color: "#10B981", Icon: "bus"},
	{Name: "Salud", Type: entity.CategoryTypeExpense, Color: "#EF4444", Icon: "heart-pulse"},
	{Name: "Entretenimiento", Type: entity.CategoryTypeExpense, Color: "#8B5CF6", Icon: "film"},
	{Name: "Servicios", Type: entity.CategoryTypeExpense, Color: "#0EA5E9", Icon: "plug"},
	{Name: "Otros Gastos", Type: entity.CategoryTypeExpense, Color: "#6B7280", Icon: "tag"},
	{Name: "Sueldo", Type: entity.CategoryTypeIncome, Color: "#22C55E", Icon: "banknote"},
	{Name: "Inversiones", Type: entity.CategoryTypeIncome, Color: "#14B8A6", Icon: "trending-up"},
	{Name: "Otros Ingresos", Type: entity.CategoryTypeIncome, Color: "#6B7280", Icon: "tag"},
}

// SeedGlobalCategories inserts the shared default categories on startup.
// Existing rows are left alone, so reruns are safe.
func SeedGlobalCategories(ctx context.Context, db *gorm.DB) error {
	for _, dc := range defaultCategories {
		categoryModel := model.CategoryModel{
			ID:        uuid.New(),
			Name:      dc.Name,
			NameLower: strings.ToLower(dc.Name),
			Color:     dc.Color,
			Icon:      dc.Icon,
			OwnerType: string(entity.OwnerTypeGlobal),
			OwnerID:   uuid.Nil,
			Type:      string(dc.Type),
			Depth:     0,
		}
		result := db.WithContext(ctx).
			Where("owner_type = ? AND owner_id = ? AND type = ? AND name_lower = ?",
				categoryModel.OwnerType, categoryModel.OwnerID, categoryModel.Type, categoryModel.NameLower).
			FirstOrCreate(&categoryModel)
		if result.Error != nil {
			return result.Error
		}
	}
	slog.Info("Global categories seeded", "count", len(defaultCategories))
	return nil
}
