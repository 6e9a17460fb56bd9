package migration

import (
	"Menu-Builder-Backend/entities"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	tables := []struct {
		name  string
		model interface{}
	}{
		{"subscription", &entities.Subscription{}},
		{"subscription transaction", &entities.SubscriptionTransaction{}},
		{"restaurant", &entities.Restaurant{}},
		{"menu category", &entities.MenuCategory{}},
		{"menu item", &entities.MenuItem{}},
		{"menu extraction", &entities.MenuExtraction{}},
	}

	for _, t := range tables {
		if err := db.AutoMigrate(t.model); err != nil {
			log.Error().Err(err).Str("table", t.name).Msg("error migrating database")
			return err
		}
	}

	log.Info().Msg("database migration complete")
	return nil
}
