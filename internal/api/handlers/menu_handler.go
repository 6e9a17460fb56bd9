package handlers

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/api/presenters"
	"Menu-Builder-Backend/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		GetMenu(c *fiber.Ctx) error
		CreateCategory(c *fiber.Ctx) error
		CreateItem(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) GetMenu(c *fiber.Ctx) error {
	userID := localString(c, "user_id")

	res, err := h.menuService.GetMenu(c.UserContext(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenu)
}

func (h *menuHandler) CreateCategory(c *fiber.Ctx) error {
	userID := localString(c, "user_id")
	req := new(domain.CreateCategoryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCategory, err)
	}

	res, err := h.menuService.CreateCategory(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCreateCategory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCategory)
}

func (h *menuHandler) CreateItem(c *fiber.Ctx) error {
	userID := localString(c, "user_id")
	req := new(domain.CreateMenuItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenuItem, err)
	}

	res, err := h.menuService.CreateItem(c.UserContext(), c.Params("id"), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCreateMenuItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenuItem)
}
