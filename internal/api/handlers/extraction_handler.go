package handlers

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/api/presenters"
	"Menu-Builder-Backend/pkg/extraction"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ExtractionHandler interface {
		ImportMenu(c *fiber.Ctx) error
		GetExtractions(c *fiber.Ctx) error
		GetExtraction(c *fiber.Ctx) error
	}

	extractionHandler struct {
		extractionService extraction.ExtractionService
		validator         *validator.Validate
	}
)

func NewExtractionHandler(extractionService extraction.ExtractionService, validator *validator.Validate) ExtractionHandler {
	return &extractionHandler{
		extractionService: extractionService,
		validator:         validator,
	}
}

func (h *extractionHandler) ImportMenu(c *fiber.Ctx) error {
	userID := localString(c, "user_id")
	req := new(domain.ImportMenuRequest)

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.RestaurantID = c.Params("id")
	req.File = file
	req.DeclaredType = c.FormValue("type")
	req.NotifyEmail = localString(c, "email")

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportMenu, err)
	}

	res, err := h.extractionService.ImportMenuFromFile(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedImportMenu, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessImportMenu)
}

func (h *extractionHandler) GetExtractions(c *fiber.Ctx) error {
	userID := localString(c, "user_id")
	restaurantID := c.Params("id")
	page, limit := pagination(c)

	extractions, count, err := h.extractionService.GetExtractions(c.UserContext(), restaurantID, userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetExtractions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"extractions": extractions,
		"pagination":  domain.NewPagination(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetExtractions)
}

func (h *extractionHandler) GetExtraction(c *fiber.Ctx) error {
	userID := localString(c, "user_id")
	extractionID := c.Params("id")

	res, err := h.extractionService.GetExtraction(c.UserContext(), extractionID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetExtraction, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetExtraction)
}
