package middleware

import (
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/api/presenters"
	"Menu-Builder-Backend/internal/utils"
	"Menu-Builder-Backend/pkg/jwt"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		claims, err := jwtService.GetClaimsByToken(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: utils.GetConfigOrDefault("CORS_ALLOW_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}
