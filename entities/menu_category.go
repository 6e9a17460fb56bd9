package entities

import (
	"github.com/google/uuid"
)

type MenuCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID"`
	Items      []*MenuItem `gorm:"foreignKey:CategoryID"`
	Timestamp
}
