package domain

import (
	"errors"

	"github.com/BalajiReddy1/FreshTrack/entities"
)

var (
	MessageSuccessAddCategory    = "category added successfully"
	MessageSuccessUpdateCategory = "category updated successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"
	MessageSuccessGetCategories  = "categories retrieved successfully"

	MessageFailedAddCategory    = "failed to add category"
	MessageFailedUpdateCategory = "failed to update category"
	MessageFailedDeleteCategory = "failed to delete category"
	MessageFailedGetCategories  = "failed to retrieve categories"

	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrInvalidColorHex      = errors.New("color must be a #RRGGBB hex code")
)

// Category is the domain model for a tracking group. Name is the identity.
type Category struct {
	Name      string `json:"name"`
	ColorHex  string `json:"color_hex"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

// CategoryToDomain maps a stored record to the domain model.
func CategoryToDomain(e entities.Category) Category {
	return Category{
		Name:      e.Name,
		ColorHex:  e.ColorHex,
		Icon:      e.Icon,
		SortOrder: e.SortOrder,
	}
}

// ToEntity maps the domain model back to its stored record.
func (c Category) ToEntity() entities.Category {
	return entities.Category{
		Name:      c.Name,
		ColorHex:  c.ColorHex,
		Icon:      c.Icon,
		SortOrder: c.SortOrder,
	}
}

type (
	AddCategoryRequest struct {
		Name      string `json:"name" validate:"required"`
		ColorHex  string `json:"color_hex" validate:"required,hexcolor"`
		Icon      string `json:"icon" validate:"required"`
		SortOrder int    `json:"sort_order"`
	}

	UpdateCategoryRequest struct {
		ColorHex  string `json:"color_hex" validate:"omitempty,hexcolor"`
		Icon      string `json:"icon" validate:"omitempty"`
		SortOrder *int   `json:"sort_order"`
	}
)
