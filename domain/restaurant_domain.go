package domain

import (
	"errors"
	"time"
)

const DefaultCurrency = "USD"

var (
	MessageSuccessCreateRestaurant = "restaurant created successfully"
	MessageSuccessGetRestaurants   = "restaurants retrieved successfully"
	MessageSuccessGetRestaurant    = "restaurant retrieved successfully"

	MessageFailedCreateRestaurant = "failed to create restaurant"
	MessageFailedGetRestaurants   = "failed to retrieve restaurants"
	MessageFailedGetRestaurant    = "failed to retrieve restaurant"

	ErrRestaurantNotFound = errors.New("restaurant not found")
)

type (
	CreateRestaurantRequest struct {
		Name            string `json:"name" validate:"required,max=120"`
		Description     string `json:"description" validate:"omitempty,max=500"`
		DefaultCurrency string `json:"default_currency" validate:"omitempty,iso4217"`
	}

	RestaurantResponse struct {
		ID              string    `json:"id"`
		OwnerID         string    `json:"owner_id"`
		Name            string    `json:"name"`
		Description     string    `json:"description,omitempty"`
		DefaultCurrency string    `json:"default_currency"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
