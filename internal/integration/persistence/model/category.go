// Package model defines database models for persistence layer.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database. NameLower
// backs the unique index that closes duplicate-name races at the storage
// boundary; it is derived from Name on every write.
type CategoryModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(50);not null"`
	NameLower string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_scope_name,priority:4"`
	Color     string         `gorm:"type:varchar(7);default:'#6366F1'"`
	Icon      string         `gorm:"type:varchar(50);default:'tag'"`
	OwnerType string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_categories_scope_name,priority:1"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_categories_scope_name,priority:2"`
	Type      string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_categories_scope_name,priority:3"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index"`
	Depth     int            `gorm:"not null;default:0"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support

	Parent *CategoryModel `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		OwnerType: entity.OwnerType(m.OwnerType),
		OwnerID:   m.OwnerID,
		Type:      entity.CategoryType(m.Type),
		ParentID:  m.ParentID,
		Depth:     m.Depth,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		NameLower: strings.ToLower(category.Name),
		Color:     category.Color,
		Icon:      category.Icon,
		OwnerType: string(category.OwnerType),
		OwnerID:   category.OwnerID,
		Type:      string(category.Type),
		ParentID:  category.ParentID,
		Depth:     category.Depth,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
