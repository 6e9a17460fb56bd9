package handlers

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/api/presenters"
	"Menu-Builder-Backend/pkg/menu"
	"Menu-Builder-Backend/pkg/subscription"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type (
	SubscriptionHandler interface {
		GetQuota(c *fiber.Ctx) error
		Checkout(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	subscriptionHandler struct {
		subscriptionService subscription.SubscriptionService
		menuService         menu.MenuService
		validator           *validator.Validate
	}
)

func NewSubscriptionHandler(subscriptionService subscription.SubscriptionService, menuService menu.MenuService, validator *validator.Validate) SubscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: subscriptionService,
		menuService:         menuService,
		validator:           validator,
	}
}

func (h *subscriptionHandler) GetQuota(c *fiber.Ctx) error {
	userID := localString(c, "user_id")

	res, err := h.menuService.GetQuota(c.UserContext(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetQuota, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetQuota)
}

func (h *subscriptionHandler) Checkout(c *fiber.Ctx) error {
	userID := localString(c, "user_id")
	req := new(domain.CheckoutRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if req.Email == "" {
		req.Email = localString(c, "email")
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTransaction, err)
	}

	res, err := h.subscriptionService.Checkout(c.UserContext(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCreateTransaction, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTransaction)
}

func (h *subscriptionHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	req := new(domain.MidtransNotificationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNotification, err)
	}

	if err := h.subscriptionService.HandleNotification(c.UserContext(), *req); err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("midtrans notification failed")
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedNotification, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessNotification)
}
