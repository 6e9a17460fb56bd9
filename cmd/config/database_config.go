package config

import (
	"Menu-Builder-Backend/internal/utils"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfigOrDefault("DB_PORT", "5432"),
		utils.GetConfigOrDefault("DB_SSLMODE", "disable"),
	)

	gormConfig := &gorm.Config{}
	if utils.GetConfig("LOG_LEVEL") != "debug" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		return nil, err
	}
	return db, nil
}
