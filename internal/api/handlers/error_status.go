package handlers

import (
	"Menu-Builder-Backend/domain"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFromError maps service errors onto HTTP status codes.
func statusFromError(err error) int {
	var (
		validationErr  *domain.ValidationError
		unsupportedErr *domain.UnsupportedFormatError
		storageErr     *domain.StorageError
		externalErr    *domain.ExternalServiceError
		malformedErr   *domain.MalformedResponseError
		partialErr     *domain.PartialImportError
		quotaErr       *domain.QuotaExceededError
		fieldErrs      validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return fiber.StatusBadRequest
	case errors.As(err, &unsupportedErr):
		return fiber.StatusUnsupportedMediaType
	case errors.As(err, &quotaErr):
		return fiber.StatusForbidden
	case errors.As(err, &storageErr), errors.As(err, &externalErr):
		return fiber.StatusBadGateway
	case errors.As(err, &malformedErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &partialErr):
		return fiber.StatusInternalServerError
	case errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrExtractionNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrTransactionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedAccess):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrParseUUID), errors.Is(err, domain.ErrInvalidTier):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrPaymentFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}
