package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetMenu        = "menu retrieved successfully"
	MessageSuccessCreateCategory = "menu category created successfully"
	MessageSuccessCreateMenuItem = "menu item created successfully"

	MessageFailedGetMenu        = "failed to retrieve menu"
	MessageFailedCreateCategory = "failed to create menu category"
	MessageFailedCreateMenuItem = "failed to create menu item"

	ErrCategoryNotFound = errors.New("menu category not found")
)

type (
	CreateCategoryRequest struct {
		Name        string `json:"name" validate:"required,max=120"`
		Description string `json:"description" validate:"omitempty,max=500"`
	}

	CreateMenuItemRequest struct {
		CategoryID  string  `json:"category_id" validate:"omitempty,uuid"`
		Name        string  `json:"name" validate:"required,max=200"`
		Description string  `json:"description" validate:"omitempty,max=1000"`
		Price       float64 `json:"price" validate:"gte=0"`
		IsSpecial   bool    `json:"is_special"`
		IsAvailable *bool   `json:"is_available"`
	}

	MenuCategoryResponse struct {
		ID           string    `json:"id"`
		RestaurantID string    `json:"restaurant_id"`
		Name         string    `json:"name"`
		Description  string    `json:"description,omitempty"`
		DisplayOrder int       `json:"display_order"`
		CreatedAt    time.Time `json:"created_at"`
	}

	MenuItemResponse struct {
		ID           string    `json:"id"`
		RestaurantID string    `json:"restaurant_id"`
		CategoryID   *string   `json:"category_id"`
		Name         string    `json:"name"`
		Description  string    `json:"description,omitempty"`
		Price        float64   `json:"price"`
		Currency     string    `json:"currency"`
		IsSpecial    bool      `json:"is_special"`
		IsAvailable  bool      `json:"is_available"`
		DisplayOrder int       `json:"display_order"`
		CreatedAt    time.Time `json:"created_at"`
	}

	ImportedMenu struct {
		Categories []MenuCategoryResponse `json:"categories"`
		Items      []MenuItemResponse     `json:"items"`
	}

	MenuResponse struct {
		RestaurantID string                 `json:"restaurant_id"`
		Categories   []MenuCategoryResponse `json:"categories"`
		Items        []MenuItemResponse     `json:"items"`
	}
)
