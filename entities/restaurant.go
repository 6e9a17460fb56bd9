package entities

import (
	"github.com/google/uuid"
)

type Restaurant struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description,omitempty"`
	DefaultCurrency string    `gorm:"type:varchar(3);not null;default:'USD'" json:"default_currency"`

	Categories []*MenuCategory `gorm:"foreignKey:RestaurantID"`
	Timestamp
}
