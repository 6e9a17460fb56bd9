package routes

import (
	"Menu-Builder-Backend/internal/api/handlers"
	"Menu-Builder-Backend/internal/middleware"
	"Menu-Builder-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	RestaurantHandler   handlers.RestaurantHandler
	MenuHandler         handlers.MenuHandler
	ExtractionHandler   handlers.ExtractionHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Restaurants()
	c.Extractions()
	c.Subscriptions()
	c.GuestRoute()
}

func (c *Config) Restaurants() {
	restaurants := c.App.Group("/api/v1/restaurants", c.Middleware.AuthMiddleware(c.JWTService))
	{
		restaurants.Post("", c.RestaurantHandler.CreateRestaurant)
		restaurants.Get("", c.RestaurantHandler.GetMyRestaurants)
		restaurants.Get("/:id", c.RestaurantHandler.GetRestaurant)

		// menu
		restaurants.Get("/:id/menu", c.MenuHandler.GetMenu)
		restaurants.Post("/:id/menu/categories", c.MenuHandler.CreateCategory)
		restaurants.Post("/:id/menu/items", c.MenuHandler.CreateItem)

		// import
		restaurants.Post("/:id/menu/import", c.ExtractionHandler.ImportMenu)
		restaurants.Get("/:id/extractions", c.ExtractionHandler.GetExtractions)
	}
}

func (c *Config) Extractions() {
	extractions := c.App.Group("/api/v1/extractions", c.Middleware.AuthMiddleware(c.JWTService))
	extractions.Get("/:id", c.ExtractionHandler.GetExtraction)
}

func (c *Config) Subscriptions() {
	subscriptions := c.App.Group("/api/v1/subscriptions", c.Middleware.AuthMiddleware(c.JWTService))
	subscriptions.Get("/quota", c.SubscriptionHandler.GetQuota)
	subscriptions.Post("/checkout", c.SubscriptionHandler.Checkout)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.SubscriptionHandler.MidtransWebhookHandler)
}
