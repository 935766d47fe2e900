// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/fianzas-manager/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=50"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon"`
	Type     string  `json:"type" binding:"required,oneof=expense income"`
	ParentID *string `json:"parent_id"`
}

// UpdateCategoryRequest represents the request body for category updates.
// parent_id participates only when reparent is true: null then means
// "detach to root".
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
	Reparent bool    `json:"reparent"`
	ParentID *string `json:"parent_id"`
}

// CategoryResponse represents the category data in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	OwnerType string    `json:"owner_type"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parent_id"`
	Depth     int       `json:"depth"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for category listings.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	var parentID *string
	if category.ParentID != nil {
		id := category.ParentID.String()
		parentID = &id
	}

	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		OwnerType: string(category.OwnerType),
		Type:      string(category.Type),
		ParentID:  parentID,
		Depth:     category.Depth,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
