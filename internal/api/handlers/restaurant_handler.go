package handlers

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/api/presenters"
	"Menu-Builder-Backend/pkg/restaurant"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RestaurantHandler interface {
		CreateRestaurant(c *fiber.Ctx) error
		GetMyRestaurants(c *fiber.Ctx) error
		GetRestaurant(c *fiber.Ctx) error
	}

	restaurantHandler struct {
		restaurantService restaurant.RestaurantService
		validator         *validator.Validate
	}
)

func NewRestaurantHandler(restaurantService restaurant.RestaurantService, validator *validator.Validate) RestaurantHandler {
	return &restaurantHandler{
		restaurantService: restaurantService,
		validator:         validator,
	}
}

func (h *restaurantHandler) CreateRestaurant(c *fiber.Ctx) error {
	userID := localString(c, "user_id")
	req := new(domain.CreateRestaurantRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRestaurant, err)
	}

	res, err := h.restaurantService.CreateRestaurant(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCreateRestaurant, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRestaurant)
}

func (h *restaurantHandler) GetMyRestaurants(c *fiber.Ctx) error {
	userID := localString(c, "user_id")

	res, err := h.restaurantService.GetMyRestaurants(c.UserContext(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetRestaurants, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurants)
}

func (h *restaurantHandler) GetRestaurant(c *fiber.Ctx) error {
	userID := localString(c, "user_id")

	res, err := h.restaurantService.GetRestaurantByID(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetRestaurant, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRestaurant)
}
