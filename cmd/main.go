package main

import (
	"Menu-Builder-Backend/cmd/config"
	migration "Menu-Builder-Backend/cmd/database/migrate"
	"Menu-Builder-Backend/domain"
	"Menu-Builder-Backend/internal/utils"
	"Menu-Builder-Backend/internal/utils/logger"
	"Menu-Builder-Backend/pkg/jwt"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations and exit")
	inMemory := flag.Bool("in-memory", false, "serve from process memory instead of Postgres")
	issueToken := flag.String("issue-token", "", "print a bearer token for the given owner id and exit")
	email := flag.String("email", "", "email claim for -issue-token")
	flag.Parse()

	utils.LoadConfig()
	logger.Init(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_FORMAT"))

	if *issueToken != "" {
		token, err := jwt.NewJWTService().GenerateTokenUser(*issueToken, domain.RoleOwner, *email, 24*time.Hour)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to issue token")
		}
		fmt.Println(token)
		return
	}

	repos := config.NewMemoryRepositories()
	if !*inMemory {
		db, err := config.ConnectDB()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect database")
		}

		if *migrate {
			if err := migration.Migrate(db); err != nil {
				log.Fatal().Err(err).Msg("migration failed")
			}
			return
		}
		repos = config.NewGormRepositories(db)
	}

	app, err := config.NewApp(repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build app")
	}

	port := utils.GetConfigOrDefault("APP_PORT", "8080")
	log.Info().Str("port", port).Bool("in_memory", *inMemory).Msg("starting server")
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
