package config

import (
	"Menu-Builder-Backend/internal/api/handlers"
	"Menu-Builder-Backend/internal/api/routes"
	"Menu-Builder-Backend/internal/middleware"
	"Menu-Builder-Backend/internal/utils"
	"Menu-Builder-Backend/internal/utils/mailing"
	"Menu-Builder-Backend/internal/utils/storage"
	"Menu-Builder-Backend/pkg/extraction"
	"Menu-Builder-Backend/pkg/jwt"
	"Menu-Builder-Backend/pkg/menu"
	"Menu-Builder-Backend/pkg/restaurant"
	"Menu-Builder-Backend/pkg/subscription"
	"Menu-Builder-Backend/pkg/vision"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Repositories struct {
	Subscription subscription.SubscriptionRepository
	Restaurant   restaurant.RestaurantRepository
	Menu         menu.MenuRepository
	Extraction   extraction.ExtractionRepository
}

func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Subscription: subscription.NewSubscriptionRepository(db),
		Restaurant:   restaurant.NewRestaurantRepository(db),
		Menu:         menu.NewMenuRepository(db),
		Extraction:   extraction.NewExtractionRepository(db),
	}
}

// NewMemoryRepositories keeps all state in process memory.
func NewMemoryRepositories() Repositories {
	return Repositories{
		Subscription: subscription.NewInMemorySubscriptionRepository(),
		Restaurant:   restaurant.NewInMemoryRestaurantRepository(),
		Menu:         menu.NewInMemoryMenuRepository(),
		Extraction:   extraction.NewInMemoryExtractionRepository(),
	}
}

func NewApp(repos Repositories) (*fiber.App, error) {
	utils.InitValidator()
	maxUploadBytes := int64(utils.GetConfigInt("MAX_UPLOAD_BYTES", extraction.DefaultMaxUploadBytes))

	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		// multipart framing on top of the file itself
		BodyLimit: int(maxUploadBytes) + 1<<20,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating logs directory")
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening log file")
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	visionClient := vision.NewVisionClient(vision.LoadVisionConfig(), validator)
	intake := extraction.NewFileIntake(s3, maxUploadBytes)

	// Service
	jwtService := jwt.NewJWTService()
	subscriptionService := subscription.NewSubscriptionService(repos.Subscription, subscription.NewMidtransGateway())
	restaurantService := restaurant.NewRestaurantService(repos.Restaurant, subscriptionService)
	menuService := menu.NewMenuService(repos.Menu, restaurantService, subscriptionService)
	extractionService := extraction.NewExtractionService(
		repos.Extraction,
		intake,
		visionClient,
		menuService,
		restaurantService,
		mailer,
	)

	// Handler
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	extractionHandler := handlers.NewExtractionHandler(extractionService, validator)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, menuService, validator)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		RestaurantHandler:   restaurantHandler,
		MenuHandler:         menuHandler,
		ExtractionHandler:   extractionHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
